package main

// Options 命令行参数
type Options struct {
	Words       []string `short:"w" long:"words" value-name:"FILE" description:"word list file, one word per line, may be repeated"`
	Patterns    []string `short:"p" long:"pattern" value-name:"PATTERN" description:"pattern to search, '.' matches any single letter, may be repeated"`
	Strategy    string   `long:"strategy" default:"dfs" choice:"dfs" choice:"bfs" choice:"bucket" description:"search strategy"`
	Alphabet    string   `long:"alphabet" default:"abcdefghijklmnopqrstuvwxyz" description:"symbols allowed in words"`
	CacheSize   int64    `long:"cache-size" value-name:"COUNT" default:"16384" description:"max cached search results, 0 disables the cache"`
	Match       bool     `short:"m" long:"match" description:"print matching words instead of true/false"`
	Limit       int      `long:"limit" value-name:"COUNT" default:"20" description:"max words printed per pattern with --match"`
	SkipInvalid bool     `long:"skip-invalid" description:"skip invalid words in word lists instead of failing"`
	Listen      string   `short:"l" long:"listen" value-name:"ADDR" description:"serve the HTTP API on ADDR, e.g. 127.0.0.1:8080"`
	LogLevel    string   `long:"log-level" default:"info" description:"log level: debug/info/warn/error"`
	LogFile     string   `long:"log-file" value-name:"OUTPUT" default:"stderr" description:"log output: stderr, stdout or file:///path"`
	Version     bool     `short:"v" long:"version" description:"print version and exit"`
}
