package supctl

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSections(t *testing.T) {
	autostart := true
	cfg := &Config{
		Port:       "*:9001",
		Username:   "admin",
		Password:   "secret",
		WorkingDir: "/var/run/app",
		Program: map[string]Program{
			"worker": {
				Command:        "app worker --queue default",
				Directory:      "/srv/app",
				Autostart:      &autostart,
				StartSecs:      5,
				StopSignal:     "TERM",
				ExitCodes:      []int{0, 2},
				RedirectStderr: true,
				Environment:    map[string]string{"B_VAR": "two", "A_VAR": "one"},
			},
		},
	}

	out := cfg.Render()

	assert.Contains(t, out, "[inet_http_server]\nport=*:9001\nusername=admin\npassword=secret\n")
	assert.Contains(t, out, "[supervisord]\nlogfile=/var/run/app/supervisord.log\npidfile=/var/run/app/supervisord.pid\ndirectory=/var/run/app\nnodaemon=false\n")
	assert.Contains(t, out, "[supervisorctl]\nserverurl=http://127.0.0.1:9001\n")
	assert.Contains(t, out, "[rpcinterface:supervisor]\nsupervisor.rpcinterface_factory = supervisor.rpcinterface:make_main_rpcinterface\n")

	assert.Contains(t, out, "[program:worker]\ncommand=app worker --queue default\n")
	assert.Contains(t, out, "directory=/srv/app\n")
	assert.Contains(t, out, "autostart=true\n")
	assert.Contains(t, out, "startsecs=5\n")
	assert.Contains(t, out, "stopsignal=TERM\n")
	assert.Contains(t, out, "exitcodes=0,2\n")
	assert.Contains(t, out, "redirect_stderr=true\n")
	assert.Contains(t, out, `environment=A_VAR="one",B_VAR="two"`)

	// options left unset stay out of the section
	assert.NotContains(t, out, "autorestart=")
	assert.NotContains(t, out, "user=")
}

func TestRenderProgramOrder(t *testing.T) {
	cfg := testConfig(t)
	cfg.Program = map[string]Program{
		"zeta":  {Command: "z"},
		"alpha": {Command: "a"},
		"mid":   {Command: "m"},
	}

	out := cfg.Render()
	zi := strings.Index(out, "[program:zeta]")
	ai := strings.Index(out, "[program:alpha]")
	mi := strings.Index(out, "[program:mid]")
	require.True(t, ai >= 0 && mi >= 0 && zi >= 0)
	assert.Less(t, ai, mi)
	assert.Less(t, mi, zi)

	// deterministic across calls
	for i := 0; i < 5; i++ {
		assert.Equal(t, out, cfg.Render())
	}
}

func TestWriteNative(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, cfg.WriteNative())

	data, err := os.ReadFile(cfg.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, cfg.Render(), string(data))
}
