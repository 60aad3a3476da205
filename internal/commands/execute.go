package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Bookmark func(BookmarkArgs) (Result, error)
	Suggest  func() (Result, error)
	Filter   func(FilterArgs) (Result, error)
	Reload   func() (Result, error)
	SignOut  func() (Result, error)
	Guest    func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeBookmark:
		if handlers.Bookmark == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "bookmark handler not configured"}
		}
		return handlers.Bookmark(*cmd.Bookmark)
	case TypeSuggest:
		if handlers.Suggest == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "suggest handler not configured"}
		}
		return handlers.Suggest()
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "filter handler not configured"}
		}
		return handlers.Filter(*cmd.Filter)
	case TypeReload:
		if handlers.Reload == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "reload handler not configured"}
		}
		return handlers.Reload()
	case TypeSignOut:
		if handlers.SignOut == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "signout handler not configured"}
		}
		return handlers.SignOut()
	case TypeGuest:
		if handlers.Guest == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "guest handler not configured"}
		}
		return handlers.Guest()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
