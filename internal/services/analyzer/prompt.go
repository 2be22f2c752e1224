package analyzer

import (
	"fmt"

	"github.com/ternarybob/newslens/internal/models"
)

// systemPrompt frames the model as an investment analyst. The prompts
// are Chinese because the source articles and the target market are.
const systemPrompt = "你是一名专业的投资分析师，擅长分析新闻对股票、期货、债券市场的影响。请以专业、客观的角度进行分析。"

const promptTemplate = `
作为一名资深的投资分析师，请分析以下新闻联播内容对中国资本市场的投资影响：

日期：%s
标题：%s
内容：%s

请从以下四个维度进行详细分析，并以 JSON 格式返回结果：

1. **行业影响** (industryImpacts)：
   - 识别受影响的行业（如：新能源、半导体、医药、房地产、消费等）
   - 每个行业给出影响评分 (0-100)、影响类型 (positive/negative/neutral)、详细分析原因、相关关键词、置信度 (0-1)

2. **上市公司影响** (companyImpacts)：
   - 识别可能受影响的具体上市公司
   - 给出公司名称、股票代码、交易所、影响评分、影响类型、分析原因、相关行业、置信度、预估价格影响

3. **期货商品影响** (futuresImpacts)：
   - 识别受影响的期货商品（如：原油、黄金、铜、钢铁、农产品等）
   - 给出商品名称、交易所（上期所/大商所/郑商所/上能源/广期所）、影响评分、影响类型、分析原因、价格走向预测、置信度

4. **债券市场影响** (bondImpacts)：
   - 分析对债券市场的影响（国债、企业债、地方债等）
   - 给出债券类型、影响评分、影响类型、分析原因、收益率走向预测、风险等级、置信度

5. **综合评估**：
   - overallSentiment: 整体市场情绪 (bullish/bearish/neutral)
   - investmentOpportunityScore: 投资机会评分 (0-100)
   - summary: 简要总结 (100字以内)

返回格式示例：
{
  "industryImpacts": [
    {
      "industryName": "新能源",
      "impactScore": 85,
      "impactType": "positive",
      "reasoning": "政策支持新能源发展...",
      "keywords": ["政策", "补贴", "发展"],
      "confidence": 0.9
    }
  ],
  "companyImpacts": [
    {
      "companyName": "宁德时代",
      "stockCode": "300750",
      "exchange": "SZSE",
      "impactScore": 80,
      "impactType": "positive",
      "reasoning": "新能源政策利好电池企业",
      "relatedIndustries": ["新能源", "汽车"],
      "confidence": 0.85,
      "estimatedPriceImpact": "+3-5%%"
    }
  ],
  "futuresImpacts": [
    {
      "commodity": "原油",
      "exchange": "上期所",
      "impactScore": 70,
      "impactType": "positive",
      "reasoning": "需求增长预期",
      "priceDirection": "up",
      "confidence": 0.75
    }
  ],
  "bondImpacts": [
    {
      "bondType": "国债",
      "impactScore": 60,
      "impactType": "neutral",
      "reasoning": "货币政策保持稳定",
      "yieldDirection": "stable",
      "riskLevel": "low",
      "confidence": 0.8
    }
  ],
  "overallSentiment": "bullish",
  "investmentOpportunityScore": 75,
  "summary": "政策利好新能源行业，相关企业和商品期货有望受益，建议关注龙头企业。"
}

**重要要求**：
1. 必须直接返回纯 JSON 格式，不要添加任何说明文字
2. 不要使用 markdown 代码块包裹
3. 直接以 { 开始，以 } 结束
4. 确保所有字段完整，如果某个维度没有明显影响，返回空数组 []
`

// buildPrompt renders the analysis request for one news item.
func buildPrompt(news *models.NewsItem) string {
	return fmt.Sprintf(promptTemplate, news.Date, news.Title, news.Content)
}
