package forms

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. A key missing from the catalog for the active locale is
// used as the format string itself.
const (
	msgUsernameRequired        = "username is required"
	msgPasswordRequired        = "password is required"
	msgConfirmPasswordRequired = "confirmPassword is required"
	msgPasswordMismatch        = "confirmPassword must match password"
	msgMinLength               = "%s must be at least %d characters"
	msgMaxLength               = "%s must be at most %d characters"
	msgInvalid                 = "%s is invalid"

	MsgSignUpSucceeded = "sign up succeeded"
)

var defaultCatalog = func() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	set := func(key, msg string) {
		if err := b.SetString(language.Korean, key, msg); err != nil {
			panic(err)
		}
	}
	set(msgUsernameRequired, "아이디 또는 사용자 이름은 필수 입력 사항입니다.")
	set(msgPasswordRequired, "비밀 번호는 필수 입력 사항입니다.")
	set(msgConfirmPasswordRequired, "비밀번호 확인은 필수 입니다.")
	set(msgPasswordMismatch, "비밀번호가 맞지 않습니다.")
	set(MsgSignUpSucceeded, "회원가입이 성공하였습니다.")
	return b
}()

// Messages renders user-facing strings for one locale.
type Messages struct {
	tag     language.Tag
	catalog catalog.Catalog
}

func NewMessages(locale string) (*Messages, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}
	return &Messages{tag: tag, catalog: defaultCatalog}, nil
}

func (m *Messages) Sprintf(key string, args ...any) string {
	return message.NewPrinter(m.tag, message.Catalog(m.catalog)).Sprintf(key, args...)
}

func requiredKey(f Field) string {
	switch f {
	case Username:
		return msgUsernameRequired
	case Password:
		return msgPasswordRequired
	default:
		return msgConfirmPasswordRequired
	}
}
