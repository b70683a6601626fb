package ledger

import "time"

// sampleLocked appends one portfolio-value sample, annotated with the
// transaction that triggered it. Samples are appended only after a
// successful buy or sell, at seed time, and on reset; the series is
// capped at HistoryLimit by evicting the oldest entries. This is plain
// truncation, not downsampling: no interpolation and no merging of
// near-coincident timestamps.
func (e *Engine) sampleLocked(txn *Transaction) {
	sample := HistorySample{
		Time:       time.Now(),
		TotalValue: e.totalValueLocked(e.quotes.Lookup()),
	}
	if txn != nil {
		sample.Trade = &TradeSummary{
			Kind:   txn.Kind,
			Symbol: txn.Symbol,
			Total:  txn.Total,
		}
	}

	e.state.History = append(e.state.History, sample)
	if n := len(e.state.History); n > HistoryLimit {
		e.state.History = append(e.state.History[:0:0], e.state.History[n-HistoryLimit:]...)
	}
}
