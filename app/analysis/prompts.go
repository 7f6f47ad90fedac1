package analysis

const analysisPrompt = `You are an AI trend analyst specializing in startup opportunities for solo developers who use "vibe coding" (AI-assisted development).

Analyze the following scraped data from multiple startup platforms and provide insights.

**Your Task:**
1. Identify the TOP 10 most promising opportunities for a solo developer to build with AI code generation
2. Look for patterns and recurring themes across platforms
3. Score each opportunity's "vibe-code-ability" (1-10) based on:
   - Technical complexity (simpler = higher score)
   - Potential for MVP in a weekend
   - Market validation (upvotes, engagement)
   - Alignment with AI/automation trends
4. Categorize opportunities into niches

**Focus Areas:**
- "Service as a Software" (AI replacing human services)
- Automation tools
- Developer productivity
- AI wrappers and integrations
- No-code/low-code adjacent tools
- Micro-SaaS opportunities

**Scraped Data:**
%s

**Response Format (JSON):**
{
  "summary": "2-3 sentence overview of this week's trends",
  "trending_categories": ["category1", "category2", ...],
  "top_opportunities": [
    {
      "rank": 1,
      "name": "Opportunity name",
      "source": "where it came from",
      "description": "what it is",
      "why_vibe_codeable": "why this is good for AI-assisted dev",
      "vibe_score": 8,
      "estimated_build_time": "1 weekend",
      "similar_examples": ["example1", "example2"],
      "url": "link to source"
    }
  ],
  "emerging_patterns": [
    {
      "pattern": "Pattern name",
      "description": "What this pattern is",
      "examples": ["example1", "example2"],
      "opportunity": "How to capitalize on this"
    }
  ],
  "service_as_software_ideas": [
    {
      "service": "Traditional service being replaced",
      "software_opportunity": "How AI can replace it",
      "complexity": "low/medium/high"
    }
  ]
}`

const trendingToolsPrompt = `You are an expert AI product analyst.
Analyze the following list of trending AI tools and provide a deep-dive report.

**Data provided:**
%s

**Your Task:**
For each tool (Top 10 max), provide:
1. **Validation**: briefly check if it seems like a real, functioning product based on the description/URL.
2. **What it does**: A clear, non-technical explanation.
3. **Critique**: A 2-sentence review (pros/cons) based on its value proposition.
4. **Revenue Potential**: 3 distinct ways a user could make money using this tool.

**Response Format (JSON):**
{
  "trending_tools_analysis": [
    {
      "name": "Tool Name",
      "url": "Tool URL",
      "what_it_does": "Explanation...",
      "validation": "Looks legitimate / MVP stage / etc.",
      "review": "Strong for X, but lacks Y...",
      "revenue_potential": [
        "Idea 1",
        "Idea 2",
        "Idea 3"
      ]
    }
  ]
}`
