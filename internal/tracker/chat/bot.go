package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/gymbuddy/internal/telemetry/metrics"
	"github.com/2beens/gymbuddy/internal/telemetry/tracing"
	"github.com/2beens/gymbuddy/internal/tracker/catalog"
	"github.com/2beens/gymbuddy/internal/tracker/parse"
	"github.com/2beens/gymbuddy/internal/tracker/repo"
	"github.com/2beens/gymbuddy/internal/tracker/session"
	"github.com/2beens/gymbuddy/internal/tracker/stats"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const recentSetsLimit = 10

// Message is one incoming text message, as delivered by the webhook.
type Message struct {
	UserID int64  `json:"userId"`
	ChatID int64  `json:"chatId"`
	Text   string `json:"text"`
}

// Callback is one inline button tap.
type Callback struct {
	UserID int64  `json:"userId"`
	ChatID int64  `json:"chatId"`
	Data   string `json:"data"`
}

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=chat_test

// Sender delivers outgoing messages through the chat transport.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendMessageWithKeyboard(ctx context.Context, chatID int64, text string, keyboard InlineKeyboard) error
	SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string) error
}

// ChartRenderer turns a chart series into a PNG image.
type ChartRenderer interface {
	Render(ctx context.Context, series ChartSeries) ([]byte, error)
}

type entriesRepo interface {
	Add(ctx context.Context, entry repo.Entry) (*repo.Entry, error)
}

type bodyRepo interface {
	Add(ctx context.Context, m repo.BodyMeasurement) (*repo.BodyMeasurement, error)
	Latest(ctx context.Context, userID int64) (*repo.BodyMeasurement, error)
	Recent(ctx context.Context, userID int64, limit int) ([]repo.BodyMeasurement, error)
}

type analyzer interface {
	Summarize(ctx context.Context, userID int64, exercise string, days int, now time.Time) ([]stats.ExerciseSummary, error)
	RecentEntries(ctx context.Context, userID int64, exercise string, limit int) ([]repo.Entry, error)
	DailySeries(ctx context.Context, userID int64, exercise string, days int, now time.Time) ([]stats.DailyPoint, error)
}

// Bot is the conversational core: it routes incoming messages and
// button taps through commands, live sessions and shorthand capture,
// and sends the results back through the Sender.
type Bot struct {
	sessions *session.Store
	entries  entriesRepo
	body     bodyRepo
	analyzer analyzer
	sender   Sender
	renderer ChartRenderer
	metrics  *metrics.Manager
	now      func() time.Time
}

type NewBotParams struct {
	Entries  entriesRepo
	Body     bodyRepo
	Analyzer analyzer
	Sender   Sender
	Renderer ChartRenderer
	Metrics  *metrics.Manager
	// Now is the clock used for entry timestamps and report windows,
	// defaults to time.Now
	Now func() time.Time
}

func NewBot(params NewBotParams) *Bot {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Bot{
		sessions: session.NewStore(),
		entries:  params.Entries,
		body:     params.Body,
		analyzer: params.Analyzer,
		sender:   params.Sender,
		renderer: params.Renderer,
		metrics:  params.Metrics,
		now:      now,
	}
}

// HandleMessage processes one text message. Command handling wins over
// a live session, the session wins over shorthand capture, and the
// fallback is a usage hint.
func (b *Bot) HandleMessage(ctx context.Context, msg Message) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "bot.handleMessage")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", msg.UserID))

	text := strings.TrimSpace(msg.Text)

	slot := b.sessions.Slot(msg.UserID)
	slot.Lock()
	defer slot.Unlock()

	if strings.HasPrefix(text, "/") {
		return b.handleCommand(ctx, slot, msg.UserID, msg.ChatID, text)
	}

	if s := slot.Session(); s != nil {
		return b.advanceSession(ctx, slot, s, text)
	}

	if sh, ok := parse.ClassifyShorthand(text); ok {
		if err := b.commitEntry(ctx, msg.UserID, sh.Exercise, sh.Reps, sh.Weight); err != nil {
			return b.sendStorageTrouble(ctx, msg.ChatID, err)
		}
		return b.sender.SendMessage(ctx, msg.ChatID,
			fmt.Sprintf("Saved ✅\nSee your progress: /progress or /progress %s 7", sh.Exercise),
		)
	}

	return b.sender.SendMessage(ctx, msg.ChatID, msgFallbackHint)
}

// HandleCallback processes one inline button tap.
func (b *Bot) HandleCallback(ctx context.Context, cb Callback) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "bot.handleCallback")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", cb.UserID))
	span.SetAttributes(attribute.String("callback.data", cb.Data))

	slot := b.sessions.Slot(cb.UserID)
	slot.Lock()
	defer slot.Unlock()

	switch cb.Data {
	case "add":
		return b.startEntryCapture(ctx, slot, cb.UserID, cb.ChatID)
	case "progress":
		return b.startArgsSession(ctx, slot, session.NewProgressArgs(cb.UserID, cb.ChatID), msgProgressPrompt)
	case "chart":
		return b.startArgsSession(ctx, slot, session.NewChartArgs(cb.UserID, cb.ChatID), msgChartPrompt)
	case "help":
		return b.sender.SendMessage(ctx, cb.ChatID, msgHelp)
	case "body":
		return b.sender.SendMessageWithKeyboard(ctx, cb.ChatID, "Pick an action:", bodyMenuKeyboard())
	case catalog.TokenBodyMetrics:
		return b.startBodyMetrics(ctx, slot, cb.UserID, cb.ChatID)
	case catalog.TokenBodyStats:
		return b.sendBodyStats(ctx, cb.UserID, cb.ChatID)
	case catalog.TokenCategoryBack:
		return b.sender.SendMessageWithKeyboard(ctx, cb.ChatID, msgPickCategory, categoriesKeyboard())
	case catalog.TokenExerciseOther:
		b.ensureEntryCapture(slot, cb.UserID, cb.ChatID)
		return b.sender.SendMessage(ctx, cb.ChatID, msgTypeExerciseName)
	}

	prefix, payload := catalog.ParseToken(cb.Data)
	switch prefix {
	case catalog.CategoryTokenPrefix:
		return b.showCategory(ctx, cb.ChatID, payload)
	case catalog.ExerciseTokenPrefix:
		return b.pickExercise(ctx, slot, cb.UserID, cb.ChatID, payload)
	}

	log.Warnf("bot: unknown callback data %q from user %d", cb.Data, cb.UserID)
	return b.sender.SendMessage(ctx, cb.ChatID, msgFallbackHint)
}

func (b *Bot) handleCommand(ctx context.Context, slot *session.Slot, userID, chatID int64, text string) error {
	fields := strings.Fields(text)
	command := fields[0]
	args := strings.Join(fields[1:], " ")

	// a fresh command always replaces whatever flow was live
	slot.Clear()

	switch command {
	case "/start":
		return b.sender.SendMessageWithKeyboard(ctx, chatID, msgWelcome, mainMenuKeyboard())
	case "/menu":
		return b.sender.SendMessageWithKeyboard(ctx, chatID, msgMenu, mainMenuKeyboard())
	case "/help", "/faq":
		return b.sender.SendMessage(ctx, chatID, msgHelp)
	case "/add":
		return b.startEntryCapture(ctx, slot, userID, chatID)
	case "/progress":
		if args == "" {
			return b.startArgsSession(ctx, slot, session.NewProgressArgs(userID, chatID), msgProgressPrompt)
		}
		queryArgs := session.ParseQueryArgs(args, session.DefaultProgressDays)
		return b.runProgress(ctx, userID, chatID, queryArgs)
	case "/chart":
		if args == "" {
			return b.startArgsSession(ctx, slot, session.NewChartArgs(userID, chatID), msgChartPrompt)
		}
		queryArgs := session.ParseQueryArgs(args, session.DefaultChartDays)
		if queryArgs.Exercise == "" {
			return b.sender.SendMessage(ctx, chatID, msgChartNeedName)
		}
		return b.runChart(ctx, userID, chatID, queryArgs)
	default:
		return b.sender.SendMessage(ctx, chatID, msgFallbackHint)
	}
}

func (b *Bot) advanceSession(ctx context.Context, slot *session.Slot, s *session.Session, text string) error {
	outcome := session.Advance(s, text)

	switch outcome.Effect {
	case session.EffectCancel:
		slot.Clear()
		b.metrics.CounterSessionsCancelled.Inc()
		return b.sender.SendMessage(ctx, s.ChatID, msgCancelled)

	case session.EffectPrompt:
		switch outcome.Prompt {
		case session.PromptRepsInvalid, session.PromptWeightInvalid, session.PromptBodyNeedTwoNumbers:
			b.metrics.CounterParseFailures.Inc()
		}
		return b.sender.SendMessage(ctx, s.ChatID, promptText(outcome.Prompt))

	case session.EffectCommit:
		return b.commitOutcome(ctx, slot, s, outcome)

	default:
		return fmt.Errorf("unexpected session effect %d", outcome.Effect)
	}
}

// commitOutcome performs the single storage call of a session turn. On
// storage failure the session is left as it was, so the user can retry
// the same input.
func (b *Bot) commitOutcome(ctx context.Context, slot *session.Slot, s *session.Session, outcome session.Outcome) error {
	switch {
	case outcome.Entry != nil:
		if err := b.commitEntry(ctx, s.UserID, outcome.Entry.Exercise, outcome.Entry.Reps, outcome.Entry.Weight); err != nil {
			return b.sendStorageTrouble(ctx, s.ChatID, err)
		}
		slot.Clear()
		b.metrics.CounterSessionsCommitted.Inc()
		return b.sender.SendMessage(ctx, s.ChatID, msgEntrySaved)

	case outcome.Body != nil:
		measurement := repo.BodyMeasurement{
			UserID:    s.UserID,
			HeightCm:  &outcome.Body.HeightCm,
			WeightKg:  &outcome.Body.WeightKg,
			CreatedAt: b.now(),
		}
		if _, err := b.body.Add(ctx, measurement); err != nil {
			return b.sendStorageTrouble(ctx, s.ChatID, err)
		}
		slot.Clear()
		b.metrics.CounterMeasurementsAdded.Inc()
		b.metrics.CounterSessionsCommitted.Inc()
		return b.sender.SendMessage(ctx, s.ChatID, fmt.Sprintf(
			"Saved: height %s cm, weight %s kg ✅",
			formatNumber(outcome.Body.HeightCm), formatNumber(outcome.Body.WeightKg),
		))

	case outcome.Progress != nil:
		if err := b.runProgress(ctx, s.UserID, s.ChatID, *outcome.Progress); err != nil {
			return b.sendStorageTrouble(ctx, s.ChatID, err)
		}
		slot.Clear()
		b.metrics.CounterSessionsCommitted.Inc()
		return nil

	case outcome.Chart != nil:
		if err := b.runChart(ctx, s.UserID, s.ChatID, *outcome.Chart); err != nil {
			return b.sendStorageTrouble(ctx, s.ChatID, err)
		}
		slot.Clear()
		b.metrics.CounterSessionsCommitted.Inc()
		return nil

	default:
		return errors.New("commit outcome without a payload")
	}
}

func (b *Bot) commitEntry(ctx context.Context, userID int64, exercise string, reps int, weight *float64) error {
	entry := repo.Entry{
		UserID:    userID,
		Exercise:  parse.NormalizeExercise(exercise),
		Reps:      reps,
		Weight:    weight,
		CreatedAt: b.now(),
	}
	added, err := b.entries.Add(ctx, entry)
	if err != nil {
		return fmt.Errorf("add entry: %w", err)
	}

	b.metrics.CounterEntriesAdded.Inc()
	log.Debugf("bot: entry %d saved for user %d: %s x%d", added.ID, userID, added.Exercise, added.Reps)
	return nil
}

func (b *Bot) startEntryCapture(ctx context.Context, slot *session.Slot, userID, chatID int64) error {
	s := session.NewEntryCapture(userID, chatID)
	slot.Set(s)
	b.metrics.CounterSessionsStarted.WithLabelValues(s.Kind.String()).Inc()

	if err := b.sender.SendMessageWithKeyboard(ctx, chatID, msgPickCategory, categoriesKeyboard()); err != nil {
		return err
	}
	return b.sender.SendMessage(ctx, chatID, msgQuickAddHint)
}

func (b *Bot) startArgsSession(ctx context.Context, slot *session.Slot, s *session.Session, prompt string) error {
	slot.Set(s)
	b.metrics.CounterSessionsStarted.WithLabelValues(s.Kind.String()).Inc()
	return b.sender.SendMessage(ctx, s.ChatID, prompt)
}

func (b *Bot) startBodyMetrics(ctx context.Context, slot *session.Slot, userID, chatID int64) error {
	s := session.NewBodyMetrics(userID, chatID)
	slot.Set(s)
	b.metrics.CounterSessionsStarted.WithLabelValues(s.Kind.String()).Inc()

	prompt := msgBodyPrompt
	latest, err := b.body.Latest(ctx, userID)
	switch {
	case err == nil:
		prompt += "\nLatest measurement: " + formatMeasurement(*latest)
	case !errors.Is(err, repo.ErrMeasurementNotFound):
		// hint only, the flow goes on without it
		log.Errorf("bot: get latest measurement for user %d: %s", userID, err)
	}

	return b.sender.SendMessage(ctx, chatID, prompt)
}

func (b *Bot) sendBodyStats(ctx context.Context, userID, chatID int64) error {
	measurements, err := b.body.Recent(ctx, userID, 10)
	if err != nil {
		return b.sendStorageTrouble(ctx, chatID, err)
	}
	if len(measurements) == 0 {
		return b.sender.SendMessage(ctx, chatID, msgNoMeasurements)
	}
	return b.sender.SendMessage(ctx, chatID, formatMeasurementHistory(measurements))
}

func (b *Bot) showCategory(ctx context.Context, chatID int64, categoryID string) error {
	category, ok := catalog.CategoryByID(categoryID)
	if !ok {
		return b.sender.SendMessage(ctx, chatID, msgUnknownCategory)
	}
	return b.sender.SendMessageWithKeyboard(ctx, chatID,
		fmt.Sprintf("Category: %s\nPick an exercise:", category.Label),
		exercisesKeyboard(categoryID),
	)
}

// pickExercise resolves a picked catalog exercise and jumps the entry
// capture straight to the reps question.
func (b *Bot) pickExercise(ctx context.Context, slot *session.Slot, userID, chatID int64, exerciseID string) error {
	title, ok := catalog.ExerciseTitle(exerciseID)
	if !ok {
		return b.sender.SendMessage(ctx, chatID, msgUnknownExercise)
	}

	s := b.ensureEntryCapture(slot, userID, chatID)
	s.Exercise = parse.NormalizeExercise(title)
	s.State = session.StateAwaitingReps

	return b.sender.SendMessage(ctx, chatID,
		fmt.Sprintf("Picked: %s\n%s", title, msgAskReps),
	)
}

// ensureEntryCapture returns the live entry-capture session, starting
// one when the tap arrived without a preceding /add.
func (b *Bot) ensureEntryCapture(slot *session.Slot, userID, chatID int64) *session.Session {
	if s := slot.Session(); s != nil && s.Kind == session.KindEntryCapture {
		return s
	}
	s := session.NewEntryCapture(userID, chatID)
	slot.Set(s)
	b.metrics.CounterSessionsStarted.WithLabelValues(s.Kind.String()).Inc()
	return s
}

func (b *Bot) runProgress(ctx context.Context, userID, chatID int64, args session.QueryArgs) error {
	summaries, err := b.analyzer.Summarize(ctx, userID, args.Exercise, args.Days, b.now())
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	if len(summaries) == 0 {
		return b.sender.SendMessage(ctx, chatID, msgNoData)
	}

	var recent []repo.Entry
	if args.Exercise != "" {
		recent, err = b.analyzer.RecentEntries(ctx, userID, args.Exercise, recentSetsLimit)
		if err != nil {
			// the summary is still worth sending
			log.Errorf("bot: recent entries for user %d [%s]: %s", userID, args.Exercise, err)
		}
	}

	return b.sender.SendMessage(ctx, chatID, formatSummary(summaries, recent, args.Days))
}

func (b *Bot) runChart(ctx context.Context, userID, chatID int64, args session.QueryArgs) error {
	series, err := b.analyzer.DailySeries(ctx, userID, args.Exercise, args.Days, b.now())
	if err != nil {
		return fmt.Errorf("daily series: %w", err)
	}
	if len(series) == 0 {
		return b.sender.SendMessage(ctx, chatID, msgNoChartData)
	}

	chart := BuildChartSeries(args.Exercise, args.Days, series)
	png, err := b.renderer.Render(ctx, chart)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	return b.sender.SendPhoto(ctx, chatID, png, chartCaption(args.Exercise, args.Days, chart.HasVolume))
}

func (b *Bot) sendStorageTrouble(ctx context.Context, chatID int64, err error) error {
	log.Errorf("bot: storage trouble: %s", err)
	if sendErr := b.sender.SendMessage(ctx, chatID, msgStorageTrouble); sendErr != nil {
		return fmt.Errorf("send storage trouble message: %w (original: %s)", sendErr, err)
	}
	return err
}
