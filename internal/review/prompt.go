package review

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/juparave/baseline/internal/llm"
	"github.com/juparave/baseline/internal/util"
)

// BuildMessages returns the system and user messages for one file
func BuildMessages(path, content string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: buildUserPrompt(path, content)},
	}
}

func buildUserPrompt(path, content string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Analyze this %s file for security vulnerabilities:\n\n", filepath.Ext(path)))
	sb.WriteString(fmt.Sprintf("File: %s\n", filepath.Base(path)))
	sb.WriteString("```" + util.ExtOrDefault(path, "txt") + "\n")
	sb.WriteString(content)
	sb.WriteString("\n```\n\n")
	sb.WriteString("Identify and report security vulnerabilities found.")

	return sb.String()
}

const systemPrompt = `You are a security auditor analyzing smart contract code for vulnerabilities.

Analyze the provided code file and identify security vulnerabilities. For each vulnerability found, provide:

1. A clear title describing the issue
2. A detailed description including:
   - What the vulnerability is
   - Where it occurs (function name, line references)
   - Why it's a security issue
   - Potential impact
3. The vulnerability type (e.g., reentrancy, access control, integer overflow, etc.)
4. Severity level (critical, high, medium, low)
5. Confidence level (0.0 to 1.0)

Focus on REAL security issues that could lead to:
- Loss of funds
- Unauthorized access
- Denial of service
- Data corruption
- Privilege escalation
- Protocol manipulation

DO NOT report:
- Code quality issues without security impact
- Gas optimization suggestions unless they prevent DoS
- Style or naming convention issues
- Missing comments or documentation
- Theoretical issues without practical exploit paths

Return your findings as JSON with top-level key "findings" (an array).
If no vulnerabilities are found, return: {"findings": []}

Example response:
{
  "findings": [
    {
      "title": "Reentrancy vulnerability in withdraw function",
      "description": "The withdraw function sends ETH before updating state...",
      "vulnerability_type": "reentrancy",
      "severity": "high",
      "confidence": 0.9,
      "location": "withdraw() function, line 45"
    }
  ]
}`
