package commands

import (
	"fmt"
	"strings"

	"loctodo/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeBookmark Type = "bookmark"
	TypeSuggest  Type = "suggest"
	TypeFilter   Type = "filter"
	TypeReload   Type = "reload"
	TypeSignOut  Type = "signout"
	TypeGuest    Type = "guest"
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

// AddArgs carries the free text that the task parser will break into
// task, time and location.
type AddArgs struct {
	Text string
}

type BookmarkArgs struct {
	Name string
}

// FilterArgs selects a task category, or all tasks when All is set.
type FilterArgs struct {
	Category model.Category
	All      bool
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Bookmark *BookmarkArgs
	Filter   *FilterArgs
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
	case TypeBookmark:
		return parseBookmark(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSuggest, TypeReload, TypeSignOut, TypeGuest:
		if len(args) != 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parseBookmark(raw string, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "bookmark requires a name"}
	}
	return Command{Type: TypeBookmark, Raw: raw, Bookmark: &BookmarkArgs{Name: name}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires a category or 'all'"}
	}
	arg := strings.ToLower(args[0])
	if arg == "all" {
		return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{All: true}}, nil
	}
	category := model.Category(arg)
	if !category.IsValid() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category: %s", arg)}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Category: category}}, nil
}
