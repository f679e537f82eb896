package validate_test

import (
	"testing"

	"github.com/inbasree/weddingvista/pkg/validate"
)

type signupInput struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"nullable,in=user,admin"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(signupInput{
		Username: "priya",
		Email:    "priya@example.com",
		Password: "secret123",
		Role:     "",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(signupInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected errors for empty input")
	}
	for _, field := range []string{"username", "email", "password"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected error for %q, got: %v", field, errs)
		}
	}
}

func TestEmailFormat(t *testing.T) {
	errs := validate.Struct(signupInput{
		Username: "priya",
		Email:    "not-an-email",
		Password: "secret123",
	})
	if _, ok := errs["email"]; !ok {
		t.Errorf("expected email error, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	errs := validate.Struct(signupInput{
		Username: "priya",
		Email:    "priya@example.com",
		Password: "secret123",
		Role:     "superuser",
	})
	if _, ok := errs["role"]; !ok {
		t.Errorf("expected role error, got: %v", errs)
	}

	errs = validate.Struct(signupInput{
		Username: "priya",
		Email:    "priya@example.com",
		Password: "secret123",
		Role:     "admin",
	})
	if validate.HasErrors(errs) {
		t.Errorf("admin should be allowed, got: %v", errs)
	}
}

type reviewInput struct {
	Rating int    `json:"rating" validate:"required,integer,between=1,5"`
	OTP    string `json:"otp"    validate:"required,digits=6"`
}

func TestBetweenRule(t *testing.T) {
	for _, rating := range []int{1, 3, 5} {
		errs := validate.Struct(reviewInput{Rating: rating, OTP: "123456"})
		if validate.HasErrors(errs) {
			t.Errorf("rating %d should pass, got: %v", rating, errs)
		}
	}
	errs := validate.Struct(reviewInput{Rating: 6, OTP: "123456"})
	if _, ok := errs["rating"]; !ok {
		t.Errorf("rating 6 should fail, got: %v", errs)
	}
}

func TestDigitsRule(t *testing.T) {
	for _, otp := range []string{"12345", "1234567", "12a456"} {
		errs := validate.Struct(reviewInput{Rating: 4, OTP: otp})
		if _, ok := errs["otp"]; !ok {
			t.Errorf("otp %q should fail, got: %v", otp, errs)
		}
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	type input struct {
		Category string `json:"category" validate:"nullable,min=3"`
	}
	if errs := validate.Struct(input{}); validate.HasErrors(errs) {
		t.Errorf("empty nullable should pass, got: %v", errs)
	}
	if errs := validate.Struct(input{Category: "ab"}); !validate.HasErrors(errs) {
		t.Error("short non-empty nullable should fail")
	}
}
