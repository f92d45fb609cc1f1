package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/lifegrid/internal/model"
)

type Type string

const (
	TypeAdd        Type = "add"
	TypeDone       Type = "done"
	TypeRemove     Type = "rm"
	TypeAlarm      Type = "alarm"
	TypeGoto       Type = "goto"
	TypeBirthdate  Type = "birthdate"
	TypeExpectancy Type = "expectancy"
	TypeOpacity    Type = "opacity"
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

type AddArgs struct {
	Text string
}

// ItemArgs addresses a todo of the focused day by its 1-based position.
type ItemArgs struct {
	Index int
}

type AlarmArgs struct {
	Index int
	Time  string
}

type GotoArgs struct {
	// Today is set for "goto today"; Day is empty then.
	Today bool
	Day   model.DayKey
}

type BirthdateArgs struct {
	Date time.Time
}

type ExpectancyArgs struct {
	Years int
}

type OpacityArgs struct {
	Value float64
}

type Command struct {
	Type       Type
	Raw        string
	Add        *AddArgs
	Item       *ItemArgs
	Alarm      *AlarmArgs
	Goto       *GotoArgs
	Birthdate  *BirthdateArgs
	Expectancy *ExpectancyArgs
	Opacity    *OpacityArgs
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
	case TypeDone, TypeRemove:
		return parseItem(input, Type(head), args)
	case TypeAlarm:
		return parseAlarm(input, args)
	case TypeGoto:
		return parseGoto(input, args)
	case TypeBirthdate:
		return parseBirthdate(input, args)
	case TypeExpectancy:
		return parseExpectancy(input, args)
	case TypeOpacity:
		return parseOpacity(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func parseAdd(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, invalid("add requires todo text")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parseIndex(name, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, invalid("%s expects a todo number starting at 1, got %q", name, arg)
	}
	return n, nil
}

func parseItem(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("%s requires a todo number", typ)
	}
	n, err := parseIndex(string(typ), args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: raw, Item: &ItemArgs{Index: n}}, nil
}

func parseAlarm(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("alarm requires a todo number and HH:MM")
	}
	n, err := parseIndex("alarm", args[0])
	if err != nil {
		return Command{}, err
	}
	hm, err := model.ParseAlarmTime(args[1])
	if err != nil {
		return Command{}, invalid("alarm time must be HH:MM, got %q", args[1])
	}
	return Command{Type: TypeAlarm, Raw: raw, Alarm: &AlarmArgs{Index: n, Time: hm.Format(model.AlarmTimeLayout)}}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("goto requires YYYY-MM-DD or today")
	}
	if strings.EqualFold(args[0], "today") {
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Today: true}}, nil
	}
	day, err := model.ParseDayKey(args[0])
	if err != nil {
		return Command{}, invalid("goto expects YYYY-MM-DD, got %q", args[0])
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Day: day}}, nil
}

func parseBirthdate(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("birthdate requires YYYY-MM-DD")
	}
	t, err := time.ParseInLocation(model.DayKeyLayout, args[0], time.Local)
	if err != nil {
		return Command{}, invalid("birthdate expects YYYY-MM-DD, got %q", args[0])
	}
	return Command{Type: TypeBirthdate, Raw: raw, Birthdate: &BirthdateArgs{Date: t}}, nil
}

func parseExpectancy(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("expectancy requires a number of years")
	}
	years, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, invalid("expectancy expects whole years, got %q", args[0])
	}
	return Command{Type: TypeExpectancy, Raw: raw, Expectancy: &ExpectancyArgs{Years: years}}, nil
}

func parseOpacity(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("opacity requires a value between 0.1 and 1.0")
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return Command{}, invalid("opacity expects a number, got %q", args[0])
	}
	return Command{Type: TypeOpacity, Raw: raw, Opacity: &OpacityArgs{Value: v}}, nil
}
