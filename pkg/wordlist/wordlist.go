package wordlist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// sniffSize 用于探测编码的字节数
const sniffSize = 4096

// Read 读取词表, 每行一个词
// 自动探测编码并转为 UTF-8; 忽略空行和 # 开头的注释行
// 词表整体读入内存, 编码从第一个非 ASCII 行开始探测
func Read(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}

	src := decoder(sniffWindow(data), bytes.NewReader(data))

	var words []string
	sc := bufio.NewScanner(src)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return words, nil
}

// ReadFile 读取词表文件
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// sniffWindow 返回从第一个含非 ASCII 字节的行开始的 sniffSize 字节, 纯 ASCII 时返回 nil
func sniffWindow(data []byte) []byte {
	i := bytes.IndexFunc(data, func(r rune) bool { return r >= 0x80 })
	if i < 0 {
		return nil
	}
	start := bytes.LastIndexByte(data[:i], '\n') + 1
	end := start + sniffSize
	if end > len(data) {
		end = len(data)
	}
	return data[start:end]
}

// decoder 根据探测结果包装解码器, 纯 ASCII 与 UTF-8 原样返回
func decoder(head []byte, r io.Reader) io.Reader {
	if len(head) == 0 {
		return r
	}
	res, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		// 无法判断时按 UTF-8 处理
		return r
	}
	if strings.EqualFold(res.Charset, "UTF-8") {
		return r
	}
	enc, err := htmlindex.Get(res.Charset)
	if err != nil {
		// chardet 的部分名称 htmlindex 不认识, 如 GB-18030
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}
