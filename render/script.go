package render

import (
	"fmt"

	"github.com/newstack-cloud/tmplexpand/sandbox"
	lua "github.com/yuin/gopher-lua"
)

// entrypointName is the well-known script function the renderer
// invokes after evaluating the template source (spec §4.4 "the
// well-known entrypoint GenerateConfig(ctx)"). The target language's
// evaluation runtime is Lua (github.com/yuin/gopher-lua, the only
// embeddable-scripting dependency found anywhere in the retrieved
// pack), not the source suffix's namesake language; ".py" stays the
// import-path discriminator per spec §6 precisely because it is
// user-facing data about the template source format, independent of
// the host evaluation runtime.
const entrypointName = "GenerateConfig"

// renderScript evaluates a script template: every module registered
// in loader is preloaded into the Lua environment under its dotted
// name (so `require("helpers.common")` resolves without a custom
// searcher hook), the template source is loaded and run to define
// GenerateConfig, and GenerateConfig(ctx) is invoked per spec §4.4.
func renderScript(templatePath, source string, ctx Context, loader *sandbox.Loader) (map[string]any, error) {
	L := lua.NewState()
	defer L.Close()

	if err := preloadSandbox(L, loader); err != nil {
		return nil, errRenderFailed(templatePath, err)
	}

	fn, err := L.LoadString(source)
	if err != nil {
		return nil, errRenderFailed(templatePath, err)
	}
	L.Push(fn)
	if err := L.PCall(0, 0, nil); err != nil {
		return nil, errRenderFailed(templatePath, err)
	}

	generate := L.GetGlobal(entrypointName)
	if generate.Type() != lua.LTFunction {
		return nil, errRenderFailed(templatePath, fmt.Errorf("script did not define %s", entrypointName))
	}

	luaCtx := buildLuaContext(L, ctx)
	if err := L.CallByParam(lua.P{Fn: generate, NRet: 1, Protect: true}, luaCtx); err != nil {
		return nil, errRenderFailed(templatePath, err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	return parseAnyRenderResult(templatePath, luaToGo(ret))
}

// preloadSandbox registers every leaf module in loader as a Lua
// preload entry, keyed by the dotted module name, so that Lua's
// `require` resolves scripts-importing-scripts purely against the
// sandbox namespace (spec §4.2) and never touches the host
// filesystem. Each module is expected to follow the conventional Lua
// `return M` module idiom: the preload thunk below propagates exactly
// one return value back to `require`.
func preloadSandbox(L *lua.LState, loader *sandbox.Loader) error {
	modules, err := loader.Modules()
	if err != nil {
		return err
	}
	for _, mod := range modules {
		content := mod.Content
		L.PreloadModule(mod.DottedName, func(L *lua.LState) int {
			fn, err := L.LoadString(content)
			if err != nil {
				L.RaiseError("%s", err.Error())
				return 0
			}
			L.Push(fn)
			if err := L.PCall(0, 1, nil); err != nil {
				L.RaiseError("%s", err.Error())
				return 0
			}
			return 1
		})
	}
	return nil
}

// buildLuaContext builds the ctx table passed to GenerateConfig,
// modeling the duck-typed evaluation context of spec §4.4 as a table
// with optional fields, populated only when the corresponding field
// was present on the originating resource.
func buildLuaContext(L *lua.LState, ctx Context) *lua.LTable {
	tbl := L.NewTable()
	if ctx.hasProperties() {
		tbl.RawSetString("properties", goToLua(L, ctx.Properties))
	}
	if ctx.hasEnv() {
		tbl.RawSetString("env", goToLua(L, ctx.Env))
	}
	if ctx.hasImports() {
		importsTbl := L.NewTable()
		for name, imp := range ctx.Imports {
			entry := L.NewTable()
			entry.RawSetString("path", lua.LString(imp.Path))
			entry.RawSetString("content", lua.LString(imp.Content))
			importsTbl.RawSetString(name, entry)
		}
		tbl.RawSetString("imports", importsTbl)
	}
	return tbl
}
