package github

import "testing"

func TestCleanHandle(t *testing.T) {
	tests := []struct{ in, want string }{
		{"octocat", "octocat"},
		{"  octocat  ", "octocat"},
		{"@octocat", "octocat"},
		{" @octocat ", "octocat"},
		{"@", ""},
	}
	for _, tt := range tests {
		if got := CleanHandle(tt.in); got != tt.want {
			t.Errorf("CleanHandle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateHandle(t *testing.T) {
	valid := []string{"a", "octocat", "oct-o-cat", "user123", "123user", "a2345678901234567890123456789012345678x"}
	for _, h := range valid {
		if err := ValidateHandle(h); err != nil {
			t.Errorf("ValidateHandle(%q) = %v, want nil", h, err)
		}
	}

	invalid := []string{"", "-octocat", "octo cat", "octo/cat", "octo.cat", "a234567890123456789012345678901234567890"}
	for _, h := range invalid {
		if err := ValidateHandle(h); err == nil {
			t.Errorf("ValidateHandle(%q) = nil, want error", h)
		}
	}
}
