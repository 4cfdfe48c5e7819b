package dictionary

import (
	"fmt"
	"strings"

	"github.com/go-ego/gse"
)

// segment 懒加载分词器, 只在首次学习时加载词典
func (e *Engine) segment(text string) ([]string, error) {
	e.segOnce.Do(func() {
		seg, err := gse.New()
		if err != nil {
			e.segErr = fmt.Errorf("init gse segmenter fail: %w", err)
			return
		}
		e.segmenter = seg
	})
	if e.segErr != nil {
		return nil, e.segErr
	}
	return e.segmenter.Cut(text, true), nil
}

// LearnFromText 从文本中学习新词
// 分词后符合字母表的词被加入词典, 其余跳过; 返回新学到的词
func (e *Engine) LearnFromText(text string) ([]string, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}

	tokens, err := e.segment(text)
	if err != nil {
		return nil, err
	}

	var learned []string
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		// 跳过空白, 标点和字母表之外的词
		if token == "" || e.alphabet.ValidateWord(token) != nil {
			continue
		}

		added, err := e.addWord(token, SourceLearn)
		if err != nil {
			return learned, fmt.Errorf("learn %q: %w", token, err)
		}
		if added {
			learned = append(learned, token)
			e.log.Info().Str("op_type", "learn").Str("word", token).Msg("learned new word")
		}
	}
	return learned, nil
}
