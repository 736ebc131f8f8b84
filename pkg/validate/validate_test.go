package validate_test

import (
	"testing"

	"github.com/shirshak001/JEWEL/pkg/validate"
)

type productInput struct {
	Title string  `json:"title" validate:"required,min=2,max=160"`
	Slug  string  `json:"slug"  validate:"nullable,alpha_dash"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Stock int     `json:"stock" validate:"gte=0"`
	Metal string  `json:"metal" validate:"nullable,in=gold,silver,rose-gold,platinum"`
	Image string  `json:"image" validate:"nullable,url"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{
		Title: "Emerald Drop Earrings",
		Slug:  "emerald-drop-earrings",
		Price: 12499,
		Stock: 4,
		Metal: "gold",
		Image: "", // nullable, allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["title"]; !ok {
		t.Error("expected title to be required")
	}
	if _, ok := errs["price"]; !ok {
		t.Error("expected price to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Qty int `json:"qty" validate:"required,gte=1,lte=99"`
	}
	if errs := validate.Struct(in{Qty: 100}); !validate.HasErrors(errs) {
		t.Error("expected qty > 99 to fail")
	}
	if errs := validate.Struct(in{Qty: 3}); validate.HasErrors(errs) {
		t.Errorf("expected qty 3 to pass, got: %v", errs)
	}
}

func TestInRuleKeepsEmbeddedCommas(t *testing.T) {
	type in struct {
		Metal string `json:"metal" validate:"required,in=gold,silver,rose-gold,max=20"`
	}
	if errs := validate.Struct(in{Metal: "copper"}); !validate.HasErrors(errs) {
		t.Error("expected invalid metal to fail")
	}
	if errs := validate.Struct(in{Metal: "rose-gold"}); validate.HasErrors(errs) {
		t.Errorf("expected rose-gold to pass: %v", errs)
	}
}

func TestConfirmedRule(t *testing.T) {
	type in struct {
		Password             string `json:"password"              validate:"required,min=8"`
		PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
	}
	if errs := validate.Struct(in{Password: "secret123", PasswordConfirmation: "wrong"}); !validate.HasErrors(errs) {
		t.Error("expected confirmation mismatch to fail")
	}
	if errs := validate.Struct(in{Password: "secret123", PasswordConfirmation: "secret123"}); validate.HasErrors(errs) {
		t.Errorf("expected matching confirmation to pass: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Image string `json:"image" validate:"nullable,url"`
	}
	if errs := validate.Struct(in{Image: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	if errs := validate.Struct(in{Image: "not-a-url"}); !validate.HasErrors(errs) {
		t.Error("expected invalid URL to fail")
	}
}

func TestAlphaDashRule(t *testing.T) {
	type in struct {
		Slug string `json:"slug" validate:"required,alpha_dash"`
	}
	if errs := validate.Struct(in{Slug: "kundan-choker_22k"}); validate.HasErrors(errs) {
		t.Errorf("expected alpha_dash to pass: %v", errs)
	}
	if errs := validate.Struct(in{Slug: "kundan choker!"}); !validate.HasErrors(errs) {
		t.Error("expected alpha_dash to fail for spaces/punctuation")
	}
}
