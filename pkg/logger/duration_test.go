/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Duration
		wantErr  bool
	}{
		{
			name:     "string duration",
			input:    `"500ms"`,
			expected: Duration(500 * time.Millisecond),
			wantErr:  false,
		},
		{
			name:     "numeric duration (nanoseconds)",
			input:    `5000000000`,
			expected: Duration(5 * time.Second),
			wantErr:  false,
		},
		{
			name:     "complex duration string",
			input:    `"1h30m45s"`,
			expected: Duration(1*time.Hour + 30*time.Minute + 45*time.Second),
			wantErr:  false,
		},
		{
			name:    "invalid duration string",
			input:   `"invalid"`,
			wantErr: true,
		},
		{
			name:    "invalid type",
			input:   `true`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for input %s, got none", tt.input)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if d != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, d)
			}
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	d := Duration(500 * time.Millisecond)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(data) != `"500ms"` {
		t.Errorf(`expected "500ms", got %s`, string(data))
	}
}
