// Package pipeline runs a crawl and its outputs as a sequence of steps.
//
// A run flows through the steps of a Pipeline:
//
//	crawl → write JSON → write Markdown → archive → summary
//
// Each Step receives the shared *model.Run and extends it. By default the
// pipeline stops at the first failing step, so a crawl that ends with a
// run-level failure writes nothing. WithContinueOnError lets the output
// steps run anyway; the run is then marked partial.
package pipeline
