package oracle

import "testing"

func TestToolCallQuery(t *testing.T) {
	tests := []struct {
		name string
		call ToolCall
		want string
	}{
		{
			name: "web search input carries the query",
			call: ToolCall{Name: "web_search", Input: map[string]any{"query": "measles rash differential"}},
			want: "measles rash differential",
		},
		{
			name: "input without a query field",
			call: ToolCall{Name: "web_search", Input: map[string]any{"url": "https://example.org"}},
			want: "",
		},
		{
			name: "non-map input",
			call: ToolCall{Name: "web_search", Input: "raw"},
			want: "",
		},
		{
			name: "nil input",
			call: ToolCall{Name: "web_search"},
			want: "",
		},
		{
			name: "query field is not a string",
			call: ToolCall{Name: "web_search", Input: map[string]any{"query": 42}},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.call.Query(); got != tt.want {
				t.Errorf("Query() = %q, want %q", got, tt.want)
			}
		})
	}
}
