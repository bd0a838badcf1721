package render

import (
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// goToLua converts a Go value from the generic document model
// (core.Document: map[string]any / []any / scalars) into the
// equivalent Lua value, for building ctx.properties / ctx.env /
// ctx.imports tables before a script's GenerateConfig call.
func goToLua(L *lua.LState, value any) lua.LValue {
	switch v := value.(type) {
	case nil:
		return lua.LNil
	case string:
		return lua.LString(v)
	case bool:
		return lua.LBool(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case map[string]any:
		tbl := L.NewTable()
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			tbl.RawSetString(k, goToLua(L, v[k]))
		}
		return tbl
	case map[string]string:
		tbl := L.NewTable()
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			tbl.RawSetString(k, lua.LString(v[k]))
		}
		return tbl
	case []any:
		tbl := L.NewTable()
		for i, elem := range v {
			tbl.RawSetInt(i+1, goToLua(L, elem))
		}
		return tbl
	default:
		return lua.LNil
	}
}

// luaToGo converts a Lua value back into the generic document model,
// the inverse of goToLua, used on a script's GenerateConfig return
// value (spec §4.4's "a document already parsed into a mapping"
// render shape).
func luaToGo(value lua.LValue) any {
	switch v := value.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		return luaTableToGo(v)
	default:
		return nil
	}
}

// luaTableToGo decides whether a Lua table reads as a sequence
// (1..n contiguous integer keys, no holes) or a map, mirroring how
// Lua code conventionally builds either shape with table literals.
func luaTableToGo(tbl *lua.LTable) any {
	length := tbl.Len()
	if length > 0 {
		isSequence := true
		tbl.ForEach(func(k, _ lua.LValue) {
			if n, ok := k.(lua.LNumber); !ok || int(n) < 1 || int(n) > length {
				isSequence = false
			}
		})
		if isSequence {
			out := make([]any, length)
			for i := 1; i <= length; i++ {
				out[i-1] = luaToGo(tbl.RawGetInt(i))
			}
			return out
		}
	}

	out := map[string]any{}
	tbl.ForEach(func(k, val lua.LValue) {
		out[k.String()] = luaToGo(val)
	})
	return out
}
