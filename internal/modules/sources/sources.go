package sources

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Picker selects an upstream image endpoint for each fetch.
type Picker interface {
	Pick() string
}

type fixed string

func (f fixed) Pick() string { return string(f) }

// Fixed returns a Picker that always selects url.
func Fixed(url string) Picker { return fixed(url) }

// List picks uniformly at random from a set of endpoints loaded from a file.
type List struct {
	urls []string
}

// Load reads endpoints from a CSV-style file: the first line is a header and
// is skipped, blank lines are ignored, and entries without a scheme get
// http:// prepended.
func Load(path string, logger *zap.Logger) (*List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	isHeader := true

	for scanner.Scan() {
		if isHeader {
			isHeader = false
			continue
		}
		url := strings.TrimSpace(scanner.Text())
		if url == "" {
			continue
		}
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			url = "http://" + url
		}
		logger.Debug("source loaded", zap.String("url", url))
		urls = append(urls, url)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("no usable endpoints in %s", path)
	}

	logger.Info("image sources loaded", zap.String("path", path), zap.Int("total", len(urls)))
	return &List{urls: urls}, nil
}

// Pick returns one of the loaded endpoints uniformly at random.
func (l *List) Pick() string {
	return l.urls[rand.IntN(len(l.urls))]
}
