package i18n

import "fmt"

// Translator retrieves localized messages for fault codes. data provides
// optional metadata to embed in the message (for example, "name" or "want").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	get := func(key string) string {
		if data == nil {
			return ""
		}
		return data[key]
	}
	switch t.lang {
	case "ja":
		switch code {
		case "unexpected_end":
			return fmt.Sprintf("%s を期待しましたが文書が終了しました", get("want"))
		case "unexpected_node":
			return fmt.Sprintf("%s を期待しましたが %s がありました", get("want"), get("got"))
		case "namespace_mismatch":
			return fmt.Sprintf("名前空間 %q を期待しましたが %q がありました", get("want"), get("got"))
		case "unexpected_element":
			return fmt.Sprintf("要素 %q を期待しましたが %q がありました", get("want"), get("got"))
		case "mismatched_end":
			return fmt.Sprintf("終了タグ %q を期待しましたが %q がありました", get("want"), get("got"))
		case "unknown_property":
			return fmt.Sprintf("未知のプロパティ要素 %q です", get("name"))
		case "missing_property":
			return fmt.Sprintf("必須プロパティ %q が不足しています", get("name"))
		case "empty_scalar":
			return fmt.Sprintf("%s 内容が必要ですが要素が空です", get("kind"))
		case "empty_enum":
			return fmt.Sprintf("列挙 %q のリテラルが必要ですが要素が空です", get("enum"))
		case "empty_polymorphic":
			return fmt.Sprintf("%q の実装要素が必要ですが要素が空です", get("interface"))
		case "value_format":
			return fmt.Sprintf("内容を %s として読み取れません", get("want"))
		case "unknown_literal":
			return fmt.Sprintf("%q は列挙 %q のリテラルではありません", get("text"), get("enum"))
		case "unknown_variant":
			return fmt.Sprintf("%q は %q の実装ではありません", get("name"), get("interface"))
		case "unmapped_literal":
			return fmt.Sprintf("リテラル %q は列挙 %q のワイヤ表に存在しません", get("literal"), get("enum"))
		}
	default: // "en"
		switch code {
		case "unexpected_end":
			return fmt.Sprintf("expected %s, got end of document", get("want"))
		case "unexpected_node":
			return fmt.Sprintf("expected %s, got %s", get("want"), get("got"))
		case "namespace_mismatch":
			return fmt.Sprintf("expected namespace %q, got %q", get("want"), get("got"))
		case "unexpected_element":
			return fmt.Sprintf("expected element %q, got %q", get("want"), get("got"))
		case "mismatched_end":
			return fmt.Sprintf("expected end of element %q, got %q", get("want"), get("got"))
		case "unknown_property":
			return fmt.Sprintf("unexpected property element %q", get("name"))
		case "missing_property":
			return fmt.Sprintf("required property %q is missing", get("name"))
		case "empty_scalar":
			return fmt.Sprintf("expected %s content, got an empty element", get("kind"))
		case "empty_enum":
			return fmt.Sprintf("expected a literal of enum %q, got an empty element", get("enum"))
		case "empty_polymorphic":
			return fmt.Sprintf("expected an implementer element of %q, got an empty element", get("interface"))
		case "value_format":
			return fmt.Sprintf("content is not readable as %s", get("want"))
		case "unknown_literal":
			return fmt.Sprintf("%q is not a literal of enum %q", get("text"), get("enum"))
		case "unknown_variant":
			return fmt.Sprintf("%q is not an implementer of %q", get("name"), get("interface"))
		case "unmapped_literal":
			return fmt.Sprintf("literal %q has no wire string in enum %q", get("literal"), get("enum"))
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T resolves code through the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
