package gopher

import "fmt"

// DefaultPort is the standard Gopher port assigned by IANA.
const DefaultPort = 70

// ItemType identifies the kind of resource a menu item or locator refers to.
// Its value is the single-character code used on the wire, so converting an
// unrecognized code to an ItemType preserves it for round-tripping; use
// [ItemType.Known] to check membership in the registry.
type ItemType byte

// Item types from RFC 1436 plus commonly used modern extensions.
const (
	TypeTextFile  ItemType = '0'
	TypeDirectory ItemType = '1'
	TypeCSO       ItemType = '2'
	TypeError     ItemType = '3'
	TypeBinHex    ItemType = '4'
	TypeDOSBinary ItemType = '5'
	TypeUUEncoded ItemType = '6'
	TypeSearch    ItemType = '7'
	TypeTelnet    ItemType = '8'
	TypeBinary    ItemType = '9'
	TypeRedundant ItemType = '+'

	// Gopher+ and common extensions
	TypeTN3270   ItemType = 'T'
	TypeGIF      ItemType = 'g'
	TypeImage    ItemType = 'I'
	TypeSound    ItemType = 's'
	TypeHTML     ItemType = 'h'
	TypeInfo     ItemType = 'i'
	TypeDocument ItemType = 'd'
	TypePDF      ItemType = 'P'
	TypeCalendar ItemType = 'c'
)

// typeInfo holds the derived attributes of a known item type.
type typeInfo struct {
	label       string
	mime        string
	extension   string
	text        bool
	interactive bool
}

// typeRegistry is the closed mapping from type code to attributes. It is
// never mutated at runtime; codes outside this table degrade to binary
// handling rather than failing.
var typeRegistry = map[ItemType]typeInfo{
	TypeTextFile:  {label: "Text File", mime: "text/plain", extension: ".txt", text: true},
	TypeDirectory: {label: "Directory", mime: "text/plain", extension: ".txt", text: true},
	TypeCSO:       {label: "CSO Phone Book", mime: "application/octet-stream", extension: ".bin", interactive: true},
	TypeError:     {label: "Error", mime: "text/plain", extension: ".txt", text: true},
	TypeBinHex:    {label: "BinHex File", mime: "application/mac-binhex40", extension: ".hqx"},
	TypeDOSBinary: {label: "DOS Binary", mime: "application/octet-stream", extension: ".bin"},
	TypeUUEncoded: {label: "UUEncoded File", mime: "text/x-uuencode", extension: ".uue"},
	TypeSearch:    {label: "Search Server", mime: "text/plain", extension: ".txt", text: true, interactive: true},
	TypeTelnet:    {label: "Telnet Session", mime: "application/octet-stream", extension: ".bin", interactive: true},
	TypeBinary:    {label: "Binary File", mime: "application/octet-stream", extension: ".bin"},
	TypeRedundant: {label: "Redundant Server", mime: "application/octet-stream", extension: ".bin"},
	TypeTN3270:    {label: "TN3270 Session", mime: "application/octet-stream", extension: ".bin", interactive: true},
	TypeGIF:       {label: "GIF Image", mime: "image/gif", extension: ".gif"},
	TypeImage:     {label: "Image File", mime: "image/unknown", extension: ".img"},
	TypeSound:     {label: "Sound File", mime: "audio/unknown", extension: ".snd"},
	TypeHTML:      {label: "HTML File", mime: "text/html", extension: ".html", text: true},
	TypeInfo:      {label: "Information", mime: "text/plain", extension: ".txt", text: true},
	TypeDocument:  {label: "Document", mime: "text/plain", extension: ".doc", text: true},
	TypePDF:       {label: "PDF Document", mime: "application/pdf", extension: ".pdf"},
	TypeCalendar:  {label: "Calendar", mime: "text/calendar", extension: ".ics", text: true},
}

// TypeFromChar returns the ItemType for a single-character code. Codes
// outside the registry are passed through unrecognized; they never fail,
// since servers in the wild emit nonstandard codes.
func TypeFromChar(c byte) ItemType {
	return ItemType(c)
}

// Known reports whether the type is part of the recognized registry.
func (t ItemType) Known() bool {
	_, ok := typeRegistry[t]
	return ok
}

// IsText reports whether content of this type is textual. Unrecognized
// types are treated as binary.
func (t ItemType) IsText() bool {
	return typeRegistry[t].text
}

// IsBinary reports whether content of this type is an opaque byte payload.
func (t ItemType) IsBinary() bool {
	return !typeRegistry[t].text
}

// IsInteractive reports whether the type denotes an interactive service
// (search, telnet-like) rather than retrievable content.
func (t ItemType) IsInteractive() bool {
	return typeRegistry[t].interactive
}

// MIMEType returns the MIME type for content of this item type.
func (t ItemType) MIMEType() string {
	if info, ok := typeRegistry[t]; ok {
		return info.mime
	}
	return "application/octet-stream"
}

// Extension returns a default file extension (with dot) for this item type.
func (t ItemType) Extension() string {
	if info, ok := typeRegistry[t]; ok {
		return info.extension
	}
	return ".bin"
}

// Label returns a human-readable name for this item type.
func (t ItemType) Label() string {
	if info, ok := typeRegistry[t]; ok {
		return info.label
	}
	return fmt.Sprintf("Unknown Type (%c)", byte(t))
}

// String returns the single-character wire code.
func (t ItemType) String() string {
	return string(rune(t))
}

// Item is one entry in a directory listing. Items are immutable after
// creation; the parser produces them and consumers only read them.
type Item struct {
	Type     ItemType
	Display  string
	Selector string
	Host     string
	Port     int
}

// URL returns the locator this item points at. The security flag is not
// part of a menu line, so the caller decides it; items on the same server
// usually inherit it from the parent locator via [URL.Join].
func (it Item) URL(secure bool) URL {
	return URL{
		Host:     it.Host,
		Port:     it.Port,
		ItemType: it.Type,
		Selector: it.Selector,
		Secure:   secure,
	}
}

// MenuLine renders the item back into wire format, without the trailing CRLF.
func (it Item) MenuLine() string {
	return fmt.Sprintf("%s%s\t%s\t%s\t%d", it.Type, it.Display, it.Selector, it.Host, it.Port)
}
