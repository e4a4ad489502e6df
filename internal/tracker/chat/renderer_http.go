package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/gymbuddy/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// HTTPChartRenderer asks the chart rendering service for a PNG of the
// given series.
type HTTPChartRenderer struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPChartRenderer(baseURL string, httpClient *http.Client) *HTTPChartRenderer {
	return &HTTPChartRenderer{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (r *HTTPChartRenderer) Render(ctx context.Context, series ChartSeries) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "chartRenderer.render")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("series.points", len(series.Dates)))

	body, err := json.Marshal(series)
	if err != nil {
		return nil, fmt.Errorf("marshal series: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/render", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("renderer returned %d: %s", resp.StatusCode, string(respBytes))
	}

	png, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return png, nil
}
