package flagx

import (
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "keeps only the allowed flag and its value",
			args:         []string{"-c", "server.json", "-d", "postgres://localhost/quizhub"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "server.json"},
		},
		{
			name:         "equals form",
			args:         []string{"--config=deploy.json", "-a", ":8080"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=deploy.json"},
		},
		{
			name:         "drops everything when nothing is allowed",
			args:         []string{"-a", ":8080", "-s", "hmac-secret", "trailing"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "dangling flag without value survives",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash-prefixed token is not a value",
			args:         []string{"-c", "-a"},
			allowedFlags: []string{"-c", "-a"},
			want:         []string{"-c", "-a"},
		},
		{
			name:         "several allowed flags keep their order",
			args:         []string{"-a", ":8080", "-g", "eu-west-1", "-c", "server.json"},
			allowedFlags: []string{"-c", "-a", "-g"},
			want:         []string{"-a", ":8080", "-g", "eu-west-1", "-c", "server.json"},
		},
		{
			name:         "empty input",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short form", func(t *testing.T) {
		os.Args = []string{"quizhub", "-c", "/etc/quizhub/server.json"}
		assert.Equal(t, "/etc/quizhub/server.json", JsonConfigFlags())
	})

	t.Run("long form", func(t *testing.T) {
		os.Args = []string{"quizhub", "-config", "/etc/quizhub/server.json"}
		assert.Equal(t, "/etc/quizhub/server.json", JsonConfigFlags())
	})

	t.Run("no config flag", func(t *testing.T) {
		os.Args = []string{"quizhub", "-a", ":8080", "-d", "dsn"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("last occurrence wins", func(t *testing.T) {
		os.Args = []string{"quizhub", "-c", "/tmp/a.json", "-config", "/tmp/b.json"}
		assert.Equal(t, "/tmp/b.json", JsonConfigFlags())
	})
}
