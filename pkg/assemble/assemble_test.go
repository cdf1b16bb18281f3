package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabel/classmatch/pkg/model"
)

func TestBuildResolvesCallEdgesAndPlaceholders(t *testing.T) {
	doc := ImageDoc{
		Name: "named",
		Classes: []ClassDoc{
			{
				ID: "com/example/Base",
				Methods: []MethodDoc{
					{Name: "helper", Return: ""},
				},
			},
			{
				ID:     "com/example/Impl",
				Parent: "com/example/Base",
				Methods: []MethodDoc{
					{
						Name:   "run",
						Return: "",
						Calls: []MemberRef{
							{Owner: "com/example/Base", Name: "helper", Descriptor: "()void"},
						},
						FieldWrites: []MemberRef{
							{Owner: "com/example/Impl", Name: "counter", Type: "int"},
						},
					},
				},
				Fields: []FieldDoc{
					{Name: "counter", Type: "int"},
				},
			},
		},
	}

	img, err := Build(doc)
	require.NoError(t, err)

	base, ok := img.Class("com/example/Base")
	require.True(t, ok, "expected com/example/Base to be declared")
	impl, ok := img.Class("com/example/Impl")
	require.True(t, ok, "expected com/example/Impl to be declared")

	assert.Equal(t, base, impl.Parent)
	assert.Contains(t, base.Children, impl.ID)

	runMethod := impl.MethodOrder[0]
	helperMethod := base.MethodOrder[0]
	assert.Contains(t, runMethod.RefsOut, helperMethod, "expected run() to call helper()")
	assert.Contains(t, helperMethod.RefsIn, runMethod, "expected helper() reverse edge to run()")

	intType, ok := img.Class("int")
	require.True(t, ok, "expected a placeholder class for the unresolved type 'int'")
	assert.False(t, intType.Real, "expected 'int' to be a non-real placeholder")

	counter := impl.Fields[model.FieldKey{Name: "counter", Type: "int"}]
	require.NotNil(t, counter, "expected field 'counter' to be declared")
	assert.Contains(t, runMethod.FieldWriteRefs, counter, "expected run() to write counter")

	assert.NoError(t, img.Validate())
}
