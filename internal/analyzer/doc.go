// Package analyzer turns a token sequence into per-word morphological
// analyses by driving a tagging engine through a gateway.Gateway.
//
// One Analyze call runs three stages:
//
//	Feed       builds one WordRecord per token and submits it
//	Reconciler consumes the engine's event stream and merges tokens the
//	           engine read as one multi-token unit
//	Compile    projects the reconciled records into WordAnalysis values
//
// The engine reports results as an analysis block followed by one or more
// index events. The first index event after a block claims it; every further
// one folds its token into the claiming record. Engine ordinals refer to the
// original submission order, so the reconciler tracks how many records it has
// removed and maps ordinal to position as ordinal - deleted.
//
// Flags are recomputed and reapplied on every call. An Analyzer is therefore
// safe to reuse sequentially, but like its gateway it must not be used from
// several goroutines at once. AnalyzeBatch gives each worker its own gateway.
package analyzer
