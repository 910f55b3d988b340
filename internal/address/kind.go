package address

import (
	"reflect"
	"strings"
)

// Kind tags a pointer with what it may refer to: a typed content entity or
// one of the fixed asset families. Asset kinds carry a canonical name
// token and the filename extensions they recognize; entity kinds carry a
// runtime descriptor of their content type instead.
type Kind struct {
	token  string
	exts   []string
	entity bool
	typ    reflect.Type
}

// The fixed asset kinds.
var (
	Page       = Kind{token: "page", exts: []string{"html", "htm"}}
	Image      = Kind{token: "image", exts: []string{"png", "jpg", "jpeg", "gif", "svg", "webp"}}
	Stylesheet = Kind{token: "style", exts: []string{"css"}}
	Script     = Kind{token: "script", exts: []string{"js", "mjs"}}
)

// EntityOf returns the entity kind for content type T.
func EntityOf[T any]() Kind {
	return Kind{token: "entity", entity: true, typ: reflect.TypeFor[T]()}
}

// Entity is the untyped entity kind; it narrows to any content type.
func Entity() Kind {
	return EntityOf[any]()
}

// IsEntity reports whether k is an entity kind rather than an asset kind.
func (k Kind) IsEntity() bool { return k.entity }

// Token returns the canonical name token ("page", "image", "style",
// "script", or "entity").
func (k Kind) Token() string { return k.token }

// Extensions returns the recognized filename extensions; nil for entities.
func (k Kind) Extensions() []string {
	if len(k.exts) == 0 {
		return nil
	}
	out := make([]string, len(k.exts))
	copy(out, k.exts)
	return out
}

// ContentType returns the runtime content-type descriptor carried by an
// entity kind; nil for asset kinds.
func (k Kind) ContentType() reflect.Type { return k.typ }

// CanonicalFilename is the file an asset kind resolves to when addressed
// by directory alone, e.g. "style.css". Empty for entity kinds.
func (k Kind) CanonicalFilename() string {
	if k.entity || len(k.exts) == 0 {
		return ""
	}
	return k.token + "." + k.exts[0]
}

// Equal compares kinds; entity kinds also compare their type descriptors.
func (k Kind) Equal(o Kind) bool {
	return k.token == o.token && k.entity == o.entity && k.typ == o.typ
}

// matchesExtension reports whether token ends in ".<ext>" for one of the
// kind's recognized extensions. Case-sensitive by design of the grammar.
func (k Kind) matchesExtension(token string) bool {
	for _, ext := range k.exts {
		if strings.HasSuffix(token, "."+ext) {
			return true
		}
	}
	return false
}

// isCanonicalFile reports whether token is exactly "<token>.<ext>" for one
// of the recognized extensions.
func (k Kind) isCanonicalFile(token string) bool {
	for _, ext := range k.exts {
		if token == k.token+"."+ext {
			return true
		}
	}
	return false
}

// KindForExtension picks the asset kind that recognizes the extension of
// filename, defaulting to the untyped entity kind when none does.
func KindForExtension(filename string) Kind {
	for _, k := range []Kind{Stylesheet, Script, Image, Page} {
		if k.matchesExtension(filename) {
			return k
		}
	}
	return Entity()
}
