package extract

import (
	"strings"
	"testing"

	"quiz-extractor/internal/config"
	"quiz-extractor/internal/utils"

	"github.com/PuerkitoBio/goquery"
)

const examPage = `<!DOCTYPE html>
<html><head><title>CyberSec</title></head>
<body>
<div class="entry-content">
<p><strong>1. Which protocol encrypts web traffic?</strong></p>
<ul>
  <li>HTTP</li>
  <li><span style="color: #ff0000;"><strong>HTTPS</strong></span></li>
  <li>FTP</li>
</ul>
<div class="message_box success"><p><strong>Explanation:</strong> HTTPS wraps
   HTTP in   TLS.</p></div>

<p><strong>2. Which two are hashing algorithms? (Choose two.)</strong></p>
<p><img src="file:///home/user/Downloads/CyberSec_files/q2.png" alt=""></p>
<ul>
  <li><strong><span style="color:red">SHA-256</span></strong></li>
  <li>AES</li>
  <li><span style='font-weight: bold; COLOR: #FF0000'>MD5</span></li>
  <li>RSA</li>
</ul>

<p><strong>3. Describe a phishing attack.</strong></p>
<p>Explain:   A   phishing
   attack uses deceptive email.</p>

<p><strong>57. What is a honeypot?</strong></p>
<ul>
  <li><span style="color: #ff0000;">A decoy system</span></li>
  <li>A firewall</li>
</ul>

<p><strong>57. What is a honeypot? (repeated)</strong></p>
<ul>
  <li>A firewall</li>
  <li><span style="color: #ff0000;">A proxy</span></li>
</ul>
<p><strong>200. Numbered emphasis outside the range</strong></p>
</div>
</body></html>`

func testConfig() config.Config {
	cfg := config.Default()
	cfg.MaxQuestionID = 60
	return cfg
}

func mustDoc(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("failed parsing test html: %v", err)
	}
	return doc
}

func newTestExtractor() *Extractor {
	return New(testConfig(), utils.DiscardLogger())
}
