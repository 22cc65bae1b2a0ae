package lexer

import "github.com/funvibe/coolc/internal/pipeline"

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.Source)
	ctx.TokenStream = NewTokenStream(l)

	for _, err := range l.Errors() {
		ctx.AddError(err)
	}

	return ctx
}
