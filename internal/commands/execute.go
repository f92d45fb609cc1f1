package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add        func(AddArgs) (Result, error)
	Done       func(ItemArgs) (Result, error)
	Remove     func(ItemArgs) (Result, error)
	Alarm      func(AlarmArgs) (Result, error)
	Goto       func(GotoArgs) (Result, error)
	Birthdate  func(BirthdateArgs) (Result, error)
	Expectancy func(ExpectancyArgs) (Result, error)
	Opacity    func(OpacityArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Done(*cmd.Item)
	case TypeRemove:
		if handlers.Remove == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Remove(*cmd.Item)
	case TypeAlarm:
		if handlers.Alarm == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Alarm(*cmd.Alarm)
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goto(*cmd.Goto)
	case TypeBirthdate:
		if handlers.Birthdate == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Birthdate(*cmd.Birthdate)
	case TypeExpectancy:
		if handlers.Expectancy == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Expectancy(*cmd.Expectancy)
	case TypeOpacity:
		if handlers.Opacity == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Opacity(*cmd.Opacity)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
