package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/trackd/internal/engine"
	"github.com/sandeepkv93/trackd/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add Acme Corp / Backend Engineer", TypeAdd},
		{"filter status:interview priority:high", TypeFilter},
		{"search platform team", TypeSearch},
		{"sort relevance", TypeSort},
		{"export csv filtered", TypeExport},
		{"/clear", TypeClear},
		{"contact Dana Ray / Engineering Manager", TypeContact},
		{"refer Dana Ray / Would you refer me?", TypeRefer},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddSplitsCompanyAndTitle(t *testing.T) {
	cmd, err := Parse("add Beta, Inc / Staff Platform Engineer")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Company != "Beta, Inc" || cmd.Add.Title != "Staff Platform Engineer" {
		t.Fatalf("unexpected add args: %+v", cmd.Add)
	}

	if _, err := Parse("add Acme only-a-company"); err == nil {
		t.Fatal("expected error for add without a slash")
	}
}

func TestParseFilterValidatesValues(t *testing.T) {
	cmd, err := Parse("filter status:offer source:referral")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Filter.Status != model.StatusOffer || cmd.Filter.Source != model.SourceReferral {
		t.Fatalf("unexpected filter args: %+v", cmd.Filter)
	}
	if cmd.Filter.Priority != "" {
		t.Fatalf("priority should stay unset, got %q", cmd.Filter.Priority)
	}

	for _, bad := range []string{"filter status:maybe", "filter vibe:good", "filter status:"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseExportValidatesFormatAndScope(t *testing.T) {
	cmd, err := Parse("export json selected")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Export.Format != engine.FormatJSON || cmd.Export.Scope != engine.ScopeSelected {
		t.Fatalf("unexpected export args: %+v", cmd.Export)
	}

	for _, bad := range []string{"export xml all", "export csv everything", "export csv"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseContactRoleIsOptional(t *testing.T) {
	cmd, err := Parse("contact Dana Ray / Engineering Manager")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Contact.Name != "Dana Ray" || cmd.Contact.Role != "Engineering Manager" {
		t.Fatalf("unexpected contact args: %+v", cmd.Contact)
	}

	cmd, err = Parse("contact Sam Lee")
	if err != nil {
		t.Fatalf("parse without role failed: %v", err)
	}
	if cmd.Contact.Name != "Sam Lee" || cmd.Contact.Role != "" {
		t.Fatalf("unexpected contact args: %+v", cmd.Contact)
	}

	if _, err := Parse("contact / Manager"); err == nil {
		t.Fatal("expected error for contact without a name")
	}
}

func TestParseReferRequiresContactAndBody(t *testing.T) {
	cmd, err := Parse("refer Dana Ray / Hi Dana, would you refer me for the backend role?")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Refer.ContactName != "Dana Ray" {
		t.Fatalf("unexpected contact name: %q", cmd.Refer.ContactName)
	}
	if cmd.Refer.Body == "" {
		t.Fatal("body lost in parsing")
	}

	for _, bad := range []string{"refer Dana Ray", "refer / hi", "refer Dana Ray /"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/sort company")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Sort: func(a SortArgs) (Result, error) {
			called = true
			if a.Field != engine.SortByCompany {
				t.Fatalf("unexpected field: %q", a.Field)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("clear")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
