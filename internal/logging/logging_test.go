package logging

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
)

func TestLogger_Levels(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name    string
		logger  Logger
		wantOut string
		wantErr string
	}{
		{
			name:    "quiet",
			logger:  Logger{},
			wantOut: "",
			wantErr: "[warn] w 3\n[error] e 4\n",
		},
		{
			name:    "verbose",
			logger:  Logger{Verbose: true},
			wantOut: "[info] i 1\n",
			wantErr: "[warn] w 3\n[error] e 4\n",
		},
		{
			name:    "debug",
			logger:  Logger{Verbose: true, Debug: true},
			wantOut: "[info] i 1\n[debug] d 2\n",
			wantErr: "[warn] w 3\n[error] e 4\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			l := tt.logger
			l.Out, l.Err = &out, &errOut

			l.Infof("i %d", 1)
			l.Debugf("d %d", 2)
			l.Warnf("w %d", 3)
			l.Errorf("e %d", 4)

			if out.String() != tt.wantOut {
				t.Errorf("stdout = %q, want %q", out.String(), tt.wantOut)
			}
			if errOut.String() != tt.wantErr {
				t.Errorf("stderr = %q, want %q", errOut.String(), tt.wantErr)
			}
		})
	}
}
