package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/trackd/internal/engine"
	"github.com/sandeepkv93/trackd/internal/model"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeFilter  Type = "filter"
	TypeSearch  Type = "search"
	TypeSort    Type = "sort"
	TypeExport  Type = "export"
	TypeClear   Type = "clear"
	TypeContact Type = "contact"
	TypeRefer   Type = "refer"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs holds "add <company> / <title>". The slash split keeps
// multi-word company names intact.
type AddArgs struct {
	Company string
	Title   string
}

type FilterArgs struct {
	Status   model.Status
	Priority model.Priority
	Source   model.Source
}

type SearchArgs struct {
	Query string
}

type SortArgs struct {
	Field engine.SortField
}

type ExportArgs struct {
	Format engine.ExportFormat
	Scope  engine.ExportScope
}

// ContactArgs holds "contact <name> / <role>"; the role part is
// optional. The contact attaches to the application under the cursor.
type ContactArgs struct {
	Name string
	Role string
}

// ReferArgs holds "refer <contact name> / <message body>". The draft
// targets the application under the cursor.
type ReferArgs struct {
	ContactName string
	Body        string
}

type Command struct {
	Type    Type
	Raw     string
	Add     *AddArgs
	Filter  *FilterArgs
	Search  *SearchArgs
	Sort    *SortArgs
	Export  *ExportArgs
	Contact *ContactArgs
	Refer   *ReferArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSearch:
		return parseSearch(input, args)
	case TypeSort:
		return parseSort(input, args)
	case TypeExport:
		return parseExport(input, args)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	case TypeContact:
		return parseContact(input, args)
	case TypeRefer:
		return parseRefer(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires <company> / <title>"}
	}
	joined := strings.Join(args, " ")
	company, title, found := strings.Cut(joined, "/")
	if !found {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires <company> / <title>"}
	}
	company = strings.TrimSpace(company)
	title = strings.TrimSpace(title)
	if company == "" || title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires both a company and a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Company: company, Title: title}}, nil
}

func parseContact(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "contact requires <name> [/ <role>]"}
	}
	joined := strings.Join(args, " ")
	name, role, _ := strings.Cut(joined, "/")
	name = strings.TrimSpace(name)
	role = strings.TrimSpace(role)
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "contact requires a name"}
	}
	return Command{Type: TypeContact, Raw: raw, Contact: &ContactArgs{Name: name, Role: role}}, nil
}

func parseRefer(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "refer requires <contact> / <message>"}
	}
	joined := strings.Join(args, " ")
	contact, body, found := strings.Cut(joined, "/")
	if !found {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "refer requires <contact> / <message>"}
	}
	contact = strings.TrimSpace(contact)
	body = strings.TrimSpace(body)
	if contact == "" || body == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "refer requires both a contact and a message"}
	}
	return Command{Type: TypeRefer, Raw: raw, Refer: &ReferArgs{ContactName: contact, Body: body}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires status:, priority: or source: pairs"}
	}
	filter := FilterArgs{}
	matched := false
	for _, arg := range args {
		key, value, found := strings.Cut(strings.ToLower(arg), ":")
		if !found || value == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("malformed filter term: %s", arg)}
		}
		switch key {
		case "status":
			status := model.Status(value)
			if !status.IsValid() {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown status: %s", value)}
			}
			filter.Status = status
		case "priority":
			priority := model.Priority(value)
			if !priority.IsValid() {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown priority: %s", value)}
			}
			filter.Priority = priority
		case "source":
			source := model.Source(value)
			if !source.IsValid() {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown source: %s", value)}
			}
			filter.Source = source
		default:
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter key: %s", key)}
		}
		matched = true
	}
	if !matched {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires status:, priority: or source: pairs"}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &filter}, nil
}

func parseSearch(raw string, args []string) (Command, error) {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "search requires text"}
	}
	return Command{Type: TypeSearch, Raw: raw, Search: &SearchArgs{Query: query}}, nil
}

func parseSort(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "sort requires a field"}
	}
	field := engine.SortField(strings.ToLower(args[0]))
	if !field.IsValid() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown sort field: %s", args[0])}
	}
	return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{Field: field}}, nil
}

func parseExport(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "export requires <format> <scope>"}
	}
	format := engine.ExportFormat(strings.ToLower(args[0]))
	if format != engine.FormatCSV && format != engine.FormatJSON {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown export format: %s", args[0])}
	}
	scope := engine.ExportScope(strings.ToLower(args[1]))
	switch scope {
	case engine.ScopeAll, engine.ScopeFiltered, engine.ScopeSelected:
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown export scope: %s", args[1])}
	}
	return Command{Type: TypeExport, Raw: raw, Export: &ExportArgs{Format: format, Scope: scope}}, nil
}
