package profile

// baseCommands is the baseline allowlist every project gets: read-only
// inspection, file juggling inside the worktree, and version control.
// Stack- and script-specific commands are added by analysis on top.
var baseCommands = []string{
	"ls", "cat", "head", "tail", "less", "more",
	"grep", "egrep", "fgrep", "rg", "find", "fd",
	"echo", "printf", "pwd", "cd", "which", "whoami", "env", "date",
	"wc", "sort", "uniq", "cut", "tr", "diff", "comm", "file", "stat",
	"mkdir", "rmdir", "touch", "cp", "mv", "rm", "ln", "chmod",
	"tar", "gzip", "gunzip", "zip", "unzip",
	"sed", "awk", "gawk", "xargs", "tee", "basename", "dirname",
	"git", "sleep", "true", "false", "test", "[", "type", "kill", "ps",
	"sh", "bash",
}

// stackCommandSets maps a detected stack category to the commands it
// unlocks.
var stackCommandSets = map[string][]string{
	"node":   {"node", "npm", "npx", "yarn", "pnpm", "bun"},
	"go":     {"go", "gofmt", "golangci-lint"},
	"python": {"python", "python3", "pip", "pip3", "pytest", "uv", "poetry"},
	"rust":   {"cargo", "rustc", "rustup"},
	"ruby":   {"ruby", "bundle", "gem", "rake"},
	"java":   {"java", "javac", "mvn", "gradle"},
	"make":   {"make"},
	"docker": {"docker", "docker-compose"},
}
