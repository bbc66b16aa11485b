package ctlsock

// Operations understood by the control socket. They map one-to-one to the
// functions of the xattr package.
const (
	OpGet     = "get"
	OpLGet    = "lget"
	OpSet     = "set"
	OpLSet    = "lset"
	OpRemove  = "remove"
	OpLRemove = "lremove"
	OpList    = "list"
	OpLList   = "llist"
)

// RequestStruct is sent by a client (encoded as JSON).
type RequestStruct struct {
	// Op is one of the Op* constants.
	Op string
	// Path is relative to the root directory the server was started with.
	// Leading slashes are ignored, paths pointing above the root are
	// rejected.
	Path string
	// Name is the attribute name. Not used by list and llist.
	Name string
	// Value is the attribute value for set and lset. Encoded as base64
	// in JSON.
	Value []byte `json:",omitempty"`
}

// ResponseStruct is sent by the server in response to a request
// (encoded as JSON).
type ResponseStruct struct {
	// Value is the attribute value returned by get and lget.
	Value []byte `json:",omitempty"`
	// Names is the list returned by list and llist, in OS order.
	Names []string `json:",omitempty"`
	// ErrNo is the error number as defined in errno.h.
	// 0 means success and -1 means that the error number is not known
	// (look at ErrText in this case).
	ErrNo int32
	// ErrKind is the name of the xattr.Kind of the failure, like
	// "AttributeNotFound" or "NoSuchPath". Empty on success.
	ErrKind string `json:",omitempty"`
	// ErrText is a detailed error message.
	ErrText string
	// WarnText contains warnings that may have been encountered while
	// processing the message.
	WarnText string
}
