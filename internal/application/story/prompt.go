// Package story 提供创作内容的提示词构建、质量评估与生成编排
package story

import (
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"novel-studio-api/internal/domain/entity"
)

// 项目字段未填写时嵌入提示词的占位文案
const unsetPlaceholder = "未設定"

// 世界观作为上下文嵌入时的截断长度
const (
	worldSettingContextRunes  = 500
	worldSettingAnalysisRunes = 1000
)

// 章节上下文最多嵌入的登场人物数
const maxContextCharacters = 5

// SynopsisParams 梗概生成参数
type SynopsisParams struct {
	CustomElements string
}

// CharacterParams 人物生成参数
type CharacterParams struct {
	Name    string
	Role    entity.CharacterRole
	Details string
}

// WorldParams 世界观生成参数
type WorldParams struct {
	Elements string
}

// ChapterParams 章节生成参数，零值字段使用默认值
type ChapterParams struct {
	ChapterName  string
	Plot         string
	TargetLength string
	Style        string
}

func (p *ChapterParams) applyDefaults() {
	if p.ChapterName == "" {
		p.ChapterName = "第X章"
	}
	if p.Plot == "" {
		p.Plot = "指定なし"
	}
	if p.TargetLength == "" {
		p.TargetLength = "3000-5000"
	}
	if p.Style == "" {
		p.Style = "三人称"
	}
}

// FullStoryParams 整部作品生成参数，零值字段使用默认值
type FullStoryParams struct {
	TargetLength string
	ChapterCount string
	Style        string
}

func (p *FullStoryParams) applyDefaults() {
	if p.TargetLength == "" {
		p.TargetLength = "10000-15000"
	}
	if p.ChapterCount == "" {
		p.ChapterCount = "3-5"
	}
	if p.Style == "" {
		p.Style = "三人称"
	}
}

// ThemeParams 企划主题生成参数
type ThemeParams struct {
	Genre    string
	Audience string
	Tone     string
}

// SynopsisPrompt 构建梗概生成提示词
func SynopsisPrompt(p *entity.Project, params SynopsisParams) string {
	return fmt.Sprintf(`
魅力的なライトノベルのあらすじを作成してください。

%s
追加設定: %s

要求:
1. 200-400文字の簡潔なあらすじ
2. 読者の興味を引く内容
3. 続きが気になる構成
4. 完成度の高い、魅力的な品質で作成してください。
`, baseInfo(p), params.CustomElements)
}

// CharacterPrompt 构建人物生成提示词
func CharacterPrompt(p *entity.Project, params CharacterParams) string {
	return fmt.Sprintf(`
魅力的なライトノベルのキャラクターを作成してください。

%s
キャラクター要求:
- 名前: %s
- 役割: %s
- 追加要求: %s

作成項目:
1. 詳細な性格設定
2. 背景・過去
3. 目標・動機
4. 外見・特徴
5. 口調・話し方
6. 他キャラとの関係性

読者に愛される魅力的なキャラクターを設計してください。
`, baseInfo(p), params.Name, params.Role, params.Details)
}

// WorldSettingPrompt 构建世界观生成提示词
func WorldSettingPrompt(p *entity.Project, params WorldParams) string {
	return fmt.Sprintf(`
独創的で魅力的な世界観を構築してください。

%s
世界観要求: %s

構築項目:
1. 世界の基本ルール・法則
2. 歴史・背景
3. 政治・社会システム
4. 魔法・超能力システム（該当する場合）
5. 地理・環境
6. 文化・風習
7. 技術レベル

既存作品との差別化を意識した独創的な世界観を作成してください。
`, baseInfo(p), params.Elements)
}

// ChapterPrompt 构建章节生成提示词
func ChapterPrompt(p *entity.Project, params ChapterParams) string {
	params.applyDefaults()

	charInfo := ""
	if p.Characters.Len() > 0 {
		names := p.CharacterNames(maxContextCharacters)
		charInfo = fmt.Sprintf("\n主要キャラクター（抜粋）:\n%s", strings.Join(names, ", "))
	}

	return fmt.Sprintf(`
読者を引き込む魅力的な章を執筆してください。

%s%s
章の設定:
- チャプター名/番号: %s
- プロット概要: %s
- 文字数目標: %s文字
- 文体: %s

執筆要求:
1. 魅力的な導入
2. キャラクターの魅力を最大化
3. 読者を飽きさせない展開
4. 次章への引き
5. 完成度の高い文章力

多くの読者に楽しんでもらえる品質で執筆してください。
`, baseInfo(p), charInfo, params.ChapterName, params.Plot, params.TargetLength, params.Style)
}

// FullStoryPrompt 构建整部作品生成提示词
func FullStoryPrompt(p *entity.Project, params FullStoryParams) string {
	params.applyDefaults()

	return fmt.Sprintf(`
完全なライトノベル作品を執筆してください。

%s
執筆要求:
- 文字数: %s文字
- 章数: %s章構成
- 文体: %s

構成:
1. 魅力的なプロローグ
2. キャラクター紹介と世界観提示
3. 事件・問題の発生
4. 展開・クライマックス
5. 解決・エピローグ

素晴らしい品質で作成してください。各章の終わりに【第○章 終了】と明記してください。
`, baseInfo(p), params.TargetLength, params.ChapterCount, params.Style)
}

// ModificationPrompt 构建通用修改提示词
// 约束模型仅输出修改后的内容本身
func ModificationPrompt(content, instruction, contentLabel string) string {
	if contentLabel == "" {
		contentLabel = "テキスト"
	}

	return fmt.Sprintf(`
以下の%[1]sを、ユーザーの指示に従って修正してください。

【修正指示】
%[2]s

【現在の%[1]s】
%[3]s

【修正要求】
- 修正指示に沿って内容を改善してください。
- 元のテキストの良い点は維持しつつ、指示された変更を加えてください。
- %[1]sとして自然で読みやすい文章にしてください。
- 以下の点は必ず守ってください：
    - %[1]sの意図や魅力を損なわないこと。
    - 文体が不自然にならないように注意してください。

修正された%[1]sのみを出力してください。余計な説明は不要です。
`, contentLabel, instruction, content)
}

// ThemePrompt 构建企划主题提案提示词
func ThemePrompt(params ThemeParams) string {
	return fmt.Sprintf("ジャンル「%s」、読者層「%s」、雰囲気「%s」の物語に適した、ライトノベルの読者が興味を惹かれるような魅力的なテーマを1つ、15文字以内で簡潔に提案してください。",
		params.Genre, params.Audience, params.Tone)
}

// DiagnosisPrompt 构建作品综合诊断提示词
func DiagnosisPrompt(p *entity.Project) string {
	return fmt.Sprintf(`
あなたは経験豊富なライトノベルの編集者です。以下の作品設定とあらすじ、キャラクター情報を分析し、読者を惹きつけるレベルに達しているか、多角的な視点から評価・診断してください。

【作品基本情報】
ジャンル: %s
ターゲット読者: %s
テーマ: %s
あらすじ: %s
世界観: %s
キャラクター（抜粋）:
%s

【評価項目】
1.  **作品の魅力・独自性**: どれだけ読者の興味を引き、他作品との差別化ができているか。
2.  **ストーリー展開**: プロットの面白さ、テンポ、伏線、クリフハンガーの適切さ。
3.  **キャラクターの魅力**: 主人公や主要キャラクターの造形の深さ、共感性、成長性。
4.  **世界観のリアリティ・魅力**: 設定の緻密さ、想像力、物語との整合性。
5.  **文章力・表現力**: 読みやすさ、描写の豊かさ、感情表現の巧みさ。
6.  **ターゲット読者への訴求力**: 設定や展開がターゲット層に響いているか。
7.  **全体的な完成度・商業性**: ライトノベルとして市場に受け入れられる可能性。

各項目について、5段階評価（★☆☆☆☆ ～ ★★★★★）で評価し、具体的な改善点を提案してください。最も改善が必要な点、そして作品の強みを明確にしてください。
`, orUnset(p.Genre), orUnset(p.TargetAudience), orUnset(p.Theme), orUnset(p.Synopsis),
		truncateRunes(orUnset(p.WorldSetting), worldSettingAnalysisRunes), characterExcerptJSON(p))
}

// ImprovementPrompt 构建作品改进建议提示词
func ImprovementPrompt(p *entity.Project) string {
	return fmt.Sprintf(`
あなたはライトノベルの専門家であり、プロの編集者です。以下の作品情報を基に、読者にさらに愛される作品にするための具体的な改善提案を行ってください。

【作品情報】
ジャンル: %s
ターゲット読者: %s
テーマ: %s
あらすじ: %s
世界観: %s
主要キャラクター（抜粋）:
%s

【改善提案の観点】
1.  **読者のエンゲージメント向上**: 読者が物語にさらに没入し、キャラクターに感情移入できるよう、どのような要素を加えるべきか。
2.  **ストーリーのフック強化**: プロットに更なる魅力を加えるためのアイデア（伏線、どんでん返し、葛藤の深化など）。
3.  **キャラクターアークの深化**: キャラクターに更なる深みや成長を与えるための要素。
4.  **世界観の活用**: 設定を物語の面白さにどう活かすか、深掘りすべき点。
5.  **テーマの強調**: 作品のテーマを読者に強く印象付けるための方法。
6.  **ライトノベルとしての独自性**: 他作品との差別化を図り、読者の記憶に残る作品にするための工夫。

これらの観点に基づき、具体的で実践的な改善策を提案してください。
`, orUnset(p.Genre), orUnset(p.TargetAudience), orUnset(p.Theme), orUnset(p.Synopsis),
		truncateRunes(orUnset(p.WorldSetting), worldSettingAnalysisRunes), characterExcerptJSON(p))
}

// baseInfo 构建作品基本信息块，所有生成模板共用
func baseInfo(p *entity.Project) string {
	return fmt.Sprintf(`
作品基本情報:
- ジャンル: %s
- ターゲット読者: %s
- テーマ: %s
- あらすじ: %s
- 世界観: %s
`, orUnset(p.Genre), orUnset(p.TargetAudience), orUnset(p.Theme), orUnset(p.Synopsis),
		truncateRunes(orUnset(p.WorldSetting), worldSettingContextRunes))
}

// characterExcerptJSON 将最多 5 个登场人物的名字与定位按登场顺序编码为 JSON 摘录
func characterExcerptJSON(p *entity.Project) string {
	excerpt := orderedmap.New[string, string]()
	for _, name := range p.CharacterNames(maxContextCharacters) {
		if ch, ok := p.Characters.Get(name); ok && ch != nil {
			excerpt.Set(name, string(ch.Role))
		}
	}

	b, err := json.MarshalIndent(excerpt, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func orUnset(s string) string {
	if s == "" {
		return unsetPlaceholder
	}
	return s
}

// truncateRunes 按符文截断，避免在多字节字符中间切断
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
