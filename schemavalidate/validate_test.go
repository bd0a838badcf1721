package schemavalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMissingSchemaFile(t *testing.T) {
	_, err := Validate(map[string]any{}, "missing.schema", "tmpl", map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not find schema file 'missing.schema'.")
}

func TestValidateEmptySchemaIsPassthrough(t *testing.T) {
	imports := map[string]string{"t.py.schema": ""}
	props, err := Validate(map[string]any{"a": 1}, "t.py.schema", "tmpl", imports)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, props)
}

func TestValidateNilPropertiesBecomeEmptyObject(t *testing.T) {
	imports := map[string]string{"t.py.schema": ""}
	props, err := Validate(nil, "t.py.schema", "tmpl", imports)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, props)
}

func TestValidateInjectsDefaults(t *testing.T) {
	schema := "" +
		"properties:\n" +
		"  one:\n" +
		"    default: 1\n" +
		"  alpha:\n" +
		"    default: alpha\n"
	imports := map[string]string{"t.py.schema": schema}

	props, err := Validate(map[string]any{}, "t.py.schema", "tmpl", imports)
	require.NoError(t, err)
	assert.Equal(t, 1, props["one"])
	assert.Equal(t, "alpha", props["alpha"])
}

func TestValidateInjectsDefaultThroughRef(t *testing.T) {
	schema := "" +
		"definitions:\n" +
		"  size:\n" +
		"    default: big\n" +
		"properties:\n" +
		"  size:\n" +
		"    $ref: '#/definitions/size'\n"
	imports := map[string]string{"t.py.schema": schema}

	props, err := Validate(map[string]any{}, "t.py.schema", "tmpl", imports)
	require.NoError(t, err)
	assert.Equal(t, "big", props["size"])
}

func TestValidateDoesNotOverwriteExistingProperty(t *testing.T) {
	schema := "" +
		"properties:\n" +
		"  one:\n" +
		"    default: 1\n"
	imports := map[string]string{"t.py.schema": schema}

	props, err := Validate(map[string]any{"one": 2}, "t.py.schema", "tmpl", imports)
	require.NoError(t, err)
	assert.Equal(t, 2, props["one"])
}

func TestValidateConstraintFailureReportsInvalidProperties(t *testing.T) {
	schema := "" +
		"properties:\n" +
		"  size:\n" +
		"    type: integer\n"
	imports := map[string]string{"t.py.schema": schema}

	_, err := Validate(map[string]any{"size": "not-an-integer"}, "t.py.schema", "tmpl", imports)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid properties for 'tmpl'")
}

func TestValidateFiltersReferenceShapedConstraintErrors(t *testing.T) {
	schema := "" +
		"properties:\n" +
		"  size:\n" +
		"    type: integer\n"
	imports := map[string]string{"t.py.schema": schema}

	props, err := Validate(map[string]any{"size": "$(ref.other.size)"}, "t.py.schema", "tmpl", imports)
	require.NoError(t, err)
	assert.Equal(t, "$(ref.other.size)", props["size"])
}

func TestValidateImportsSectionRequiresDeclaredImport(t *testing.T) {
	schema := "" +
		"imports:\n" +
		"  - path: helper.py\n" +
		"properties: {}\n"
	imports := map[string]string{"t.py.schema": schema}

	_, err := Validate(map[string]any{}, "t.py.schema", "tmpl", imports)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "helper.py")
}

func TestValidateImportsSectionSatisfiedByName(t *testing.T) {
	schema := "" +
		"imports:\n" +
		"  - path: helper.py\n" +
		"    name: aliasedHelper\n" +
		"properties: {}\n"
	imports := map[string]string{
		"t.py.schema":   schema,
		"aliasedHelper": "def helper(): pass",
	}

	_, err := Validate(map[string]any{}, "t.py.schema", "tmpl", imports)
	require.NoError(t, err)
}

func TestValidateMalformedSchemaReportsInvalidSchema(t *testing.T) {
	schema := "" +
		"properties:\n" +
		"  one:\n" +
		"    type: not-a-real-type\n"
	imports := map[string]string{"t.py.schema": schema}

	_, err := Validate(map[string]any{}, "t.py.schema", "tmpl", imports)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid schema 't.py.schema'")
}
