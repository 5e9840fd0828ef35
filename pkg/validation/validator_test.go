package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string   `json:"name" validate:"required,max=5"`
	Kind   string   `json:"kind" validate:"omitempty,oneof=a b"`
	Link   string   `json:"link" validate:"omitempty,url"`
	Tags   []string `json:"tags" validate:"max=2"`
	Hidden string   `json:"-"`
}

func TestValidateMessages(t *testing.T) {
	v := New()
	require.NoError(t, v.Validate(&sample{Name: "ok"}))

	err := v.Validate(&sample{Kind: "c", Link: "nope", Tags: []string{"1", "2", "3"}})
	require.EqualError(t, err, "name is required; kind must be one of [a b]; link must be a valid URL; tags must be at most 2")

	require.EqualError(t, v.Validate(&sample{Name: "toolong"}), "name must be at most 5")
}
