package analyzer

import (
	"github.com/funvibe/coolc/internal/pipeline"
	"github.com/golang/glog"
)

type SemanticAnalyzerProcessor struct{}

// Process runs semantic analysis over the parsed program. Analysis needs
// a clean front end: when lexing or parsing already produced errors the
// stage is a no-op so the driver reports those first.
func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		glog.V(1).Info("skipping semantic analysis: no AST or front-end errors present")
		return ctx
	}

	analyzer := New(ctx.Interner)
	// Analyzer diagnostics already carry the owning class's filename;
	// program-level ones (e.g. a missing Main) deliberately have none.
	ctx.Errors = append(ctx.Errors, analyzer.Analyze(ctx.AstRoot)...)
	return ctx
}
