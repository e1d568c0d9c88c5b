package loader

import (
	"testing"
)

func newTestEnvLoader(env ...string) *EnvLoader {
	l := NewEnvLoader("BACKCHANNEL_")
	l.environ = func() []string { return env }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	l := newTestEnvLoader(
		"BACKCHANNEL_DATA_DIR=/opt/bc/data",
		"BACKCHANNEL_VERBOSE=yes",
		"BACKCHANNEL_SET_PASSKEY=abc",
		"BACKCHANNEL_UNKNOWN=1",
		"HOME=/root",
	)

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	paths := config["paths"].(map[string]any)
	if paths["dataDir"] != "/opt/bc/data" {
		t.Errorf("dataDir = %v", paths["dataDir"])
	}
	logging := config["logging"].(map[string]any)
	if logging["verbose"] != true {
		t.Errorf("verbose = %v, want true", logging["verbose"])
	}
	if len(config) != 2 {
		t.Errorf("unexpected keys in %v", config)
	}
}

func TestEnvLoader_Settings(t *testing.T) {
	l := newTestEnvLoader(
		"BACKCHANNEL_SET_REQ_INTERVAL=2-5",
		"BACKCHANNEL_SET_HTTP_USER_AGENT=file:///tmp/ua.lst",
		"BACKCHANNEL_SET_HTTP_DNT=",
		"BACKCHANNEL_SET_=ignored",
		"BACKCHANNEL_DEBUG=1",
		"OTHER_SET_X=1",
	)

	got := l.Settings()
	want := map[string]string{
		"REQ_INTERVAL":    "2-5",
		"HTTP_USER_AGENT": "file:///tmp/ua.lst",
		"HTTP_DNT":        "",
	}
	if len(got) != len(want) {
		t.Fatalf("Settings() = %v", got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestEnvLoader_LoadKeepsPathsAsStrings(t *testing.T) {
	tests := []struct {
		name string
		env  string
		path []string
		want any
	}{
		{"numeric session", "BACKCHANNEL_SESSION=123", []string{"paths", "session"}, "123"},
		{"zero data dir", "BACKCHANNEL_DATA_DIR=0", []string{"paths", "dataDir"}, "0"},
		{"yes data dir", "BACKCHANNEL_DATA_DIR=yes", []string{"paths", "dataDir"}, "yes"},
		{"debug one", "BACKCHANNEL_DEBUG=1", []string{"logging", "debug"}, true},
		{"verbose off", "BACKCHANNEL_VERBOSE=Off", []string{"logging", "verbose"}, false},
		{"verbose junk", "BACKCHANNEL_VERBOSE=loud", []string{"logging", "verbose"}, "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := newTestEnvLoader(tt.env).Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			section, ok := config[tt.path[0]].(map[string]any)
			if !ok {
				t.Fatalf("missing section %s in %v", tt.path[0], config)
			}
			if got := section[tt.path[1]]; got != tt.want {
				t.Errorf("%s = %v (%T), want %v (%T)", tt.path[1], got, got, tt.want, tt.want)
			}
		})
	}
}
