package environment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/livefeed/pkg/environment"
)

func TestNormalize(t *testing.T) {
	cases := map[string]environment.Environment{
		"production":  environment.Production,
		"prod":        environment.Production,
		" PROD ":      environment.Production,
		"staging":     environment.Staging,
		"stage":       environment.Staging,
		"development": environment.Development,
		"dev":         environment.Development,
		"":            environment.Development,
		"qa":          environment.Development,
	}
	for in, want := range cases {
		assert.Equal(t, want, environment.Normalize(in), "input %q", in)
	}
}

func TestIsProduction(t *testing.T) {
	assert.True(t, environment.IsProduction("prod"))
	assert.False(t, environment.IsProduction("staging"))
}
