package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add     func(AddArgs) (Result, error)
	Filter  func(FilterArgs) (Result, error)
	Search  func(SearchArgs) (Result, error)
	Sort    func(SortArgs) (Result, error)
	Export  func(ExportArgs) (Result, error)
	Clear   func() (Result, error)
	Contact func(ContactArgs) (Result, error)
	Refer   func(ReferArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "filter handler not configured"}
		}
		return handlers.Filter(*cmd.Filter)
	case TypeSearch:
		if handlers.Search == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "search handler not configured"}
		}
		return handlers.Search(*cmd.Search)
	case TypeSort:
		if handlers.Sort == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "sort handler not configured"}
		}
		return handlers.Sort(*cmd.Sort)
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "export handler not configured"}
		}
		return handlers.Export(*cmd.Export)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "clear handler not configured"}
		}
		return handlers.Clear()
	case TypeContact:
		if handlers.Contact == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "contact handler not configured"}
		}
		return handlers.Contact(*cmd.Contact)
	case TypeRefer:
		if handlers.Refer == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "refer handler not configured"}
		}
		return handlers.Refer(*cmd.Refer)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
