package pipeline

import (
	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/symbols"
	"github.com/funvibe/coolc/internal/token"
)

// TokenStream is the lexer's output as the parser consumes it.
type TokenStream interface {
	Next() token.Token
	Peek(n int) []token.Token
}

// PipelineContext carries one source file through the stages.
type PipelineContext struct {
	FilePath string
	Source   string

	Interner    *symbols.Table
	TokenStream TokenStream
	AstRoot     *ast.Program

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{
		Source:   source,
		Interner: symbols.NewTable(),
	}
}

// AddError appends a diagnostic, stamping the context's file path on
// diagnostics that don't carry one yet.
func (ctx *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, err)
}

// Processor is one stage: lexing, parsing or semantic analysis.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages keep running after errors so that a
// single run collects diagnostics from every stage that can still make
// progress; stages that need clean input check ctx.Errors themselves.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
