package utils

import "testing"

func TestGenerateOTPLength(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code := GenerateOTP(length)
		if len(code) != length {
			t.Errorf("GenerateOTP(%d) = %q, want %d digits", length, code, length)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Errorf("GenerateOTP(%d) = %q contains a non-digit", length, code)
				break
			}
		}
	}
}

func TestGenerateOTPDefaultsLength(t *testing.T) {
	if code := GenerateOTP(0); len(code) != 6 {
		t.Errorf("GenerateOTP(0) = %q, want 6 digits", code)
	}
	if code := GenerateOTP(-3); len(code) != 6 {
		t.Errorf("GenerateOTP(-3) = %q, want 6 digits", code)
	}
}

func TestGenerateOTPNoLeadingZero(t *testing.T) {
	// The range starts at 10^(n-1), so a shorter code cannot appear
	for i := 0; i < 50; i++ {
		if code := GenerateOTP(6); code[0] == '0' {
			t.Fatalf("code %q has a leading zero", code)
		}
	}
}
