package notifier

import (
	"strings"
	"testing"
)

func TestRenderOTPEmail(t *testing.T) {
	body, err := renderOTPEmail("Asha", "042137")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(body, "<b>Asha</b>") {
		t.Error("body does not greet the user by first name")
	}
	if !strings.Contains(body, ">042137<") {
		t.Error("body does not carry the raw code")
	}
	if !strings.Contains(body, "valid for 10 minutes") {
		t.Error("body does not state the validity window")
	}
}

func TestRenderOTPEmail_EscapesName(t *testing.T) {
	body, err := renderOTPEmail(`<script>alert("x")</script>`, "123456")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Error("user-supplied name was not HTML-escaped")
	}
}
