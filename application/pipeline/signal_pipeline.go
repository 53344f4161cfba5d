// application/pipeline/signal_pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crypto-engulfing-alert-bot/internal/core/domain/analysis"
	"crypto-engulfing-alert-bot/internal/core/domain/candle"
	"crypto-engulfing-alert-bot/internal/core/domain/fetchers"
	"crypto-engulfing-alert-bot/internal/core/domain/signals"
	"crypto-engulfing-alert-bot/internal/core/domain/signals/detectors"
	"crypto-engulfing-alert-bot/pkg/logger"
)

// SignalPipeline - один цикл: свечи -> паттерн и тренд -> дедупликация -> рассылка
type SignalPipeline struct {
	opts       Options
	fetcher    CandleFetcher
	dispatcher AlertDispatcher
	dedup      *signals.DedupState
	tracker    *Tracker
	journals   []Journal
	now        func() time.Time
}

// NewSignalPipeline создает пайплайн; dedup принадлежит пайплайну
func NewSignalPipeline(opts Options, fetcher CandleFetcher, dispatcher AlertDispatcher, dedup *signals.DedupState, tracker *Tracker, journals ...Journal) *SignalPipeline {
	if opts.TrendPeriod == 0 {
		opts.TrendPeriod = analysis.DefaultTrendPeriod
	}
	if dedup == nil {
		dedup = signals.NewDedupState()
	}
	return &SignalPipeline{
		opts:       opts,
		fetcher:    fetcher,
		dispatcher: dispatcher,
		dedup:      dedup,
		tracker:    tracker,
		journals:   journals,
		now:        time.Now,
	}
}

// Dedup возвращает состояние дедупликации
func (p *SignalPipeline) Dedup() *signals.DedupState {
	return p.dedup
}

// RunCycle выполняет один цикл.
// Отказ всех провайдеров не считается ошибкой цикла: алерта просто нет.
func (p *SignalPipeline) RunCycle(ctx context.Context) (res CycleResult, err error) {
	res = CycleResult{StartedAt: p.now(), Signal: signals.None, Trend: analysis.TrendUndefined}
	defer func() { res.Duration = p.now().Sub(res.StartedAt) }()

	candles, provider, fetchErr := p.fetcher.FetchWithFallback(ctx, p.opts.Symbol, p.opts.Interval, p.opts.CandleLimit)
	if fetchErr != nil {
		var allFailed *fetchers.AllProvidersFailedError
		if errors.As(fetchErr, &allFailed) {
			logger.Error("❌ Нет данных по %s %s: %v", p.opts.Symbol, p.opts.Interval, fetchErr)
			res.FetchError = fetchErr.Error()
			p.recordFailure(res.StartedAt, fetchErr)
			return res, nil
		}
		p.recordFailure(res.StartedAt, fetchErr)
		return res, fmt.Errorf("fetch candles: %w", fetchErr)
	}

	res.Candles = len(candles)
	res.Provider = provider

	last, _ := candle.Last(candles)
	res.Price = last.Close
	res.Signal = detectors.DetectLatest(candles)
	res.Trend = analysis.ClassifyTrend(candles, p.opts.TrendPeriod, p.opts.DeadbandPct)

	logger.Debug("🔍 %s %s: %d свечей от %s, цена %s, сигнал %s, тренд %s",
		p.opts.Symbol, p.opts.Interval, len(candles), provider, res.Price, res.Signal, res.Trend)

	if !p.dedup.ShouldDispatch(res.Signal) {
		if res.Signal != signals.None {
			res.Suppressed = true
			logger.Info("🔁 Сигнал %s уже отправлялся, пропуск", res.Signal)
		}
		p.recordCycle(res)
		return res, nil
	}

	alert := signals.NewAlert(p.opts.Symbol, p.opts.Interval, res.Signal, res.Trend, last, provider)
	res.AlertID = alert.ID

	if !p.dispatcher.Dispatch(ctx, alert) {
		// состояние не меняем: сигнал будет отправлен в следующем цикле
		logger.Warn("⚠️ Алерт %s %s не доставлен ни в один канал", p.opts.Symbol, res.Signal)
		p.recordCycle(res)
		return res, nil
	}

	p.dedup.RecordDispatched(res.Signal)
	res.Dispatched = true
	logger.Signal(p.opts.Symbol, p.opts.Interval, string(res.Signal), string(res.Trend), res.Price.String())

	p.journal(ctx, alert)
	p.recordCycle(res)
	return res, nil
}

// journal пишет алерт во все журналы; ошибки только логируются
func (p *SignalPipeline) journal(ctx context.Context, alert signals.Alert) {
	for _, j := range p.journals {
		if err := j.Record(ctx, alert); err != nil {
			logger.Warn("⚠️ Журнал %s: %v", j.Name(), err)
		}
	}
}

func (p *SignalPipeline) recordCycle(res CycleResult) {
	if p.tracker != nil {
		p.tracker.RecordCycle(res)
	}
}

func (p *SignalPipeline) recordFailure(at time.Time, err error) {
	if p.tracker != nil {
		p.tracker.RecordFailure(at, err)
	}
}
