package registry

import "github.com/IliaW/bots-checker/internal/model"

// bots must match the published crawler signatures byte for byte.
var bots = [...]model.Bot{
	{
		Company:   "OpenAI",
		Name:      "OAI-SearchBot",
		UserAgent: "OAI-SearchBot/1.0; +https://openai.com/searchbot",
	},
	{
		Company:   "OpenAI",
		Name:      "ChatGPT-User",
		UserAgent: "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko); compatible; ChatGPT-User/1.0; +https://openai.com/bot",
	},
	{
		Company:   "OpenAI",
		Name:      "GPTBot",
		UserAgent: "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko); compatible; GPTBot/1.1; +https://openai.com/gptbot",
	},
	{
		Company:   "Anthropic",
		Name:      "ClaudeBot",
		UserAgent: "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko; compatible; ClaudeBot/1.0; +claudebot@anthropic.com)",
	},
	{
		Company:   "Anthropic",
		Name:      "Claude-User",
		UserAgent: "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko; compatible; Claude-User/1.0; +Claude-User@anthropic.com)",
	},
	{
		Company:   "Perplexity",
		Name:      "PerplexityBot",
		UserAgent: "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko; compatible; PerplexityBot/1.0; +https://perplexity.ai/perplexitybot)",
	},
	{
		Company:   "Perplexity",
		Name:      "Perplexity-User",
		UserAgent: "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko; compatible; Perplexity-User/1.0; +https://perplexity.ai/perplexity-user)",
	},
}

// Bots returns a copy of the registry in registration order.
func Bots() []model.Bot {
	list := make([]model.Bot, len(bots))
	copy(list, bots[:])
	return list
}

// Companies returns company names in registration order, each once.
func Companies() []string {
	var companies []string
	for i, b := range bots {
		if i == 0 || bots[i-1].Company != b.Company {
			companies = append(companies, b.Company)
		}
	}
	return companies
}

func BotsOf(company string) []model.Bot {
	var list []model.Bot
	for _, b := range bots {
		if b.Company == company {
			list = append(list, b)
		}
	}
	return list
}
