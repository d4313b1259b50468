package imports

// stdlibModules lists top-level standard library modules of Python 3 plus
// the Python 2 names still common in Cheetah templates.
var stdlibModules = map[string]struct{}{}

func init() {
	for _, name := range []string{
		"__builtin__", "_thread", "abc", "aifc", "argparse", "array", "ast",
		"asynchat", "asyncio", "asyncore", "atexit", "audioop", "base64",
		"bdb", "binascii", "bisect", "builtins", "bz2", "cPickle",
		"cStringIO", "calendar", "cgi", "cgitb", "chunk", "cmath", "cmd",
		"code", "codecs", "codeop", "collections", "colorsys", "commands",
		"compileall", "concurrent", "configparser", "contextlib",
		"contextvars", "copy", "copy_reg", "copyreg", "crypt", "csv",
		"ctypes", "curses", "dataclasses", "datetime", "dbm", "decimal",
		"difflib", "dis", "doctest", "email", "encodings", "ensurepip",
		"enum", "errno", "exceptions", "faulthandler", "fcntl", "filecmp",
		"fileinput", "fnmatch", "fractions", "ftplib", "functools", "gc",
		"getopt", "getpass", "gettext", "glob", "graphlib", "grp", "gzip",
		"hashlib", "heapq", "hmac", "html", "htmlentitydefs", "httplib",
		"http", "imaplib", "imghdr", "imp", "importlib", "inspect", "io",
		"ipaddress", "itertools", "json", "keyword", "linecache", "locale",
		"logging", "lzma", "mailbox", "marshal", "math", "mimetypes",
		"mmap", "modulefinder", "multiprocessing", "netrc", "nntplib",
		"numbers", "operator", "optparse", "os", "pathlib", "pdb", "pickle",
		"pickletools", "pkgutil", "platform", "plistlib", "poplib", "posix",
		"posixpath", "pprint", "profile", "pstats", "pty", "pwd",
		"py_compile", "pyclbr", "pydoc", "queue", "quopri", "random", "re",
		"readline", "reprlib", "resource", "rlcompleter", "runpy", "sched",
		"secrets", "select", "selectors", "sets", "shelve", "shlex",
		"shutil", "signal", "site", "smtplib", "socket", "socketserver",
		"sqlite3", "ssl", "stat", "statistics", "string", "StringIO",
		"stringprep", "struct", "subprocess", "symtable", "sys",
		"sysconfig", "syslog", "tabnanny", "tarfile", "tempfile", "termios",
		"textwrap", "thread", "threading", "time", "timeit", "tkinter",
		"token", "tokenize", "tomllib", "trace", "traceback", "tracemalloc",
		"tty", "turtle", "types", "typing", "unicodedata", "unittest",
		"urllib", "urllib2", "urlparse", "uu", "uuid", "venv", "warnings",
		"wave", "weakref", "webbrowser", "wsgiref", "xdrlib", "xml",
		"xmlrpc", "xmlrpclib", "zipapp", "zipfile", "zipimport", "zlib",
		"zoneinfo",
	} {
		stdlibModules[name] = struct{}{}
	}
}

// IsStdlib reports whether top is a standard library module name.
func IsStdlib(top string) bool {
	_, ok := stdlibModules[top]
	return ok
}
