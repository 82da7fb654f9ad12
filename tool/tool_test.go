package tool

import (
	"testing"

	"github.com/simmyhq/simmy/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("requires a name", func(t *testing.T) {
		_, err := New("", func(*pubsub.Bus, Args) (string, error) { return "", nil })
		assert.Error(t, err)
	})

	t.Run("requires an executor", func(t *testing.T) {
		_, err := New("echo", nil)
		assert.Error(t, err)
	})

	t.Run("applies options", func(t *testing.T) {
		def, err := New("echo",
			func(_ *pubsub.Bus, args Args) (string, error) { return args.String("text"), nil },
			Description("Echoes the input back."),
			Parameters(Object([]string{"text"}, P("text", String("The text to echo.")))),
		)
		require.NoError(t, err)
		assert.Equal(t, "echo", def.Name)
		assert.Equal(t, "Echoes the input back.", def.Description)
		require.NotNil(t, def.Parameters)
		assert.Equal(t, []string{"text"}, def.Parameters.Required)
	})

	t.Run("defaults to an empty object schema", func(t *testing.T) {
		def := Must("noop", func(*pubsub.Bus, Args) (string, error) { return "ok", nil })
		require.NotNil(t, def.Parameters)
		assert.Equal(t, "object", def.Parameters.Type)
	})
}

func TestValidate(t *testing.T) {
	schema := Object([]string{"description", "requirements"},
		P("description", String("what to do")),
		P("requirements", StringArray("steps")),
		P("completed", Boolean("already done")),
	)

	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"valid", `{"description":"d","requirements":["a","b"]}`, ""},
		{"valid with optional", `{"description":"d","requirements":["a"],"completed":true}`, ""},
		{"missing required", `{"description":"d"}`, `missing required argument "requirements"`},
		{"wrong scalar type", `{"description":42,"requirements":["a"]}`, `argument "description" must be a string`},
		{"wrong array type", `{"description":"d","requirements":"not a list"}`, `argument "requirements" must be an array`},
		{"wrong element type", `{"description":"d","requirements":[1,2]}`, `argument "requirements" must be an array of strings`},
		{"wrong bool type", `{"description":"d","requirements":["a"],"completed":"yes"}`, `argument "completed" must be a boolean`},
		{"not an object", `["nope"]`, "arguments must be a JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(schema, ParseArgs(tt.raw))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestArgsAccessors(t *testing.T) {
	args := ParseArgs(`{"name":"simmy","steps":["one","two"],"done":true}`)

	assert.True(t, args.Has("name"))
	assert.False(t, args.Has("missing"))
	assert.Equal(t, "simmy", args.String("name"))
	assert.Equal(t, []string{"one", "two"}, args.Strings("steps"))
	assert.True(t, args.Bool("done"))
	assert.Nil(t, args.Strings("name"), "Strings on a non-array returns nil")
}
