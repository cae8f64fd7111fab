package resolve

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/existential-go/capability"
	"github.com/lex00/existential-go/errors"
)

var drinkPos = token.Position{Filename: "drink.go", Offset: 40, Line: 5, Column: 1}

func drinkable(embeds ...string) DeclSummary {
	return DeclSummary{DeclKind: DeclInterface, TypeName: "Drinkable", Embeds: embeds}
}

func TestResolve(t *testing.T) {
	cfg, err := Resolve(drinkable("Hashable"), Site{Position: drinkPos},
		capability.HashableCodableBundle, capability.Optional)
	require.NoError(t, err)

	assert.Equal(t, capability.HashableCodableBundle, cfg.Bundle)
	assert.Equal(t, capability.Optional, cfg.Variant)
	assert.Equal(t, "Drinkable", cfg.Name)
	assert.Equal(t, AccessDefault, cfg.Access)
	assert.Empty(t, cfg.Implicit)
	assert.Equal(t, drinkPos, cfg.Pos)
}

func TestResolveAccess(t *testing.T) {
	tests := []struct {
		value string
		want  AccessLevel
	}{
		{"exported", AccessExported},
		{"public", AccessExported},
		{"unexported", AccessUnexported},
		{"private", AccessUnexported},
		{"internal", AccessUnexported},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			site := Site{Position: drinkPos, Args: []Argument{{Label: "access", Value: tt.value}}}
			cfg, err := Resolve(drinkable(), site, capability.EquatableBundle, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Access)
		})
	}
}

func TestResolveSendable(t *testing.T) {
	cfg, err := Resolve(drinkable("fmt.Stringer", "Sendable", "Sendable"), Site{Position: drinkPos},
		capability.CodableBundle, capability.Collection)
	require.NoError(t, err)
	assert.Equal(t, []capability.ImplicitCapability{capability.Sendable}, cfg.Implicit)
	assert.True(t, cfg.Has(capability.Sendable))

	// Only exact unqualified names count.
	cfg, err = Resolve(drinkable("SendableThing", "sendable"), Site{Position: drinkPos},
		capability.CodableBundle, 0)
	require.NoError(t, err)
	assert.Empty(t, cfg.Implicit)
}

func TestResolveInvalidDeclarationKind(t *testing.T) {
	for _, kind := range []DeclKind{DeclStruct, DeclType, DeclAlias, DeclFunc, DeclVar, DeclConst, DeclUnknown} {
		t.Run(kind.String(), func(t *testing.T) {
			decl := DeclSummary{DeclKind: kind, TypeName: "Drinkable"}
			// An invalid argument must not mask the declaration kind.
			site := Site{Position: drinkPos, Args: []Argument{{Label: "bogus"}}}
			_, err := Resolve(decl, site, capability.HashableBundle, 0)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidDeclarationKind))
			assert.Contains(t, err.Error(), "interface")

			pos, ok := errors.PositionOf(err)
			require.True(t, ok)
			assert.Equal(t, drinkPos, pos)
		})
	}
}

func TestResolveInvalidArgument(t *testing.T) {
	tests := []struct {
		name string
		args []Argument
	}{
		{"unknown label", []Argument{{Label: "visibility", Value: "public"}}},
		{"unknown level", []Argument{{Label: "access", Value: "open"}}},
		{"missing value", []Argument{{Label: "access"}}},
		{"unlabeled", []Argument{{Value: "public"}}},
		{"too many", []Argument{{Label: "access", Value: "public"}, {Label: "access", Value: "private"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(drinkable(), Site{Position: drinkPos, Args: tt.args},
				capability.DecodableBundle, 0)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
			pos, ok := errors.PositionOf(err)
			require.True(t, ok)
			assert.Equal(t, drinkPos, pos)
		})
	}
}

func TestAccessLevelIdent(t *testing.T) {
	assert.Equal(t, "HashableDrinkable", AccessDefault.Ident("HashableDrinkable"))
	assert.Equal(t, "HashableDrinkable", AccessExported.Ident("HashableDrinkable"))
	assert.Equal(t, "hashableDrinkable", AccessUnexported.Ident("HashableDrinkable"))
	assert.Equal(t, "", AccessUnexported.Ident(""))
}
