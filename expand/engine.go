package expand

import (
	"github.com/google/uuid"
	"github.com/newstack-cloud/tmplexpand/core"
	"github.com/newstack-cloud/tmplexpand/render"
	"github.com/newstack-cloud/tmplexpand/sandbox"
	"github.com/newstack-cloud/tmplexpand/schemavalidate"
)

// Engine is the handle the Expansion Driver runs against. It holds
// only the logger. The sandbox namespace, render engine and schema
// Validator are not process-global tables and do not live on the
// Engine either: every call to Engine.Expand builds a fresh
// invocation that owns them, so two calls never share that mutable
// state.
type Engine struct {
	Logger core.Logger
}

// NewEngine constructs an Engine. A nil logger is replaced with a
// no-op logger so callers never need a nil check.
func NewEngine(logger core.Logger) *Engine {
	if logger == nil {
		logger = core.NewNopLogger()
	}
	return &Engine{Logger: logger}
}

// invocation carries the per-call state threaded through the
// recursive resource walk: the fresh Sandbox Loader, Render Engine,
// and schema Validator built from this call's import set (never
// reused across calls, per spec §5), plus the flattened import views
// each stage needs and a logger scoped to this call's trace id.
type invocation struct {
	traceID         string
	logger          core.Logger
	imports         map[string]Import
	schemaSource    map[string]string
	renderImports   map[string]render.Import
	renderEngine    *render.Engine
	schemaValidator *schemavalidate.Validator
	env             map[string]string
	validate        bool
	wantOutputs     bool
}

func newInvocation(logger core.Logger, imports map[string]Import, env map[string]string, validateSchema, wantOutputs bool) (*invocation, error) {
	traceID := uuid.NewString()
	invLogger := logger.Named("expand").WithFields(core.StringLogField("traceId", traceID))

	loader := sandbox.NewLoader()
	if err := loader.Install(toSandboxEntries(imports)); err != nil {
		invLogger.Error("failed to install sandbox modules", core.ErrorLogField("error", err))
		return nil, err
	}

	invLogger.Info(
		"starting expansion invocation",
		core.IntegerLogField("importCount", int64(len(imports))),
		core.BoolLogField("validateSchema", validateSchema),
		core.BoolLogField("wantOutputs", wantOutputs),
	)

	return &invocation{
		traceID:         traceID,
		logger:          invLogger,
		imports:         imports,
		schemaSource:    flattenForSchemaValidation(imports),
		renderImports:   toRenderImports(imports),
		renderEngine:    &render.Engine{Sandbox: loader},
		schemaValidator: schemavalidate.NewValidator(),
		env:             env,
		validate:        validateSchema,
		wantOutputs:     wantOutputs,
	}, nil
}
