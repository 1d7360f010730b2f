// Package presenter turns domain results into reply messages for the
// chat platform. Builders are pure: they never touch storage, and every
// piece of state a follow-up postback needs is embedded in the button
// payloads. Payloads must never carry secrets or other tenants' data.
package presenter

import (
	"fmt"

	"tirehub-line-gateway/internal/domain"
	"tirehub-line-gateway/internal/infrastructure/line"
)

const (
	headerColor  = "#1F2937"
	accentColor  = "#2563EB"
	mutedColor   = "#6B7280"
	dangerColor  = "#DC2626"
	successColor = "#16A34A"
)

// Welcome is the reply to a follow event.
func Welcome() []line.Message {
	return []line.Message{line.NewTextMessage(
		"友だち追加ありがとうございます。\n" +
			"タイヤサイズ(例: 205/55R16)やブランド名を送ると在庫を検索できます。\n" +
			"アカウント連携には6桁の連携コードを送信してください。",
	)}
}

// NoResults is the reply when a search matches nothing.
func NoResults(keyword string) []line.Message {
	return []line.Message{line.NewTextMessage(
		fmt.Sprintf("「%s」に一致する在庫が見つかりませんでした。", keyword),
	)}
}

// SearchResults renders one page of listings as a carousel. Adjust
// buttons are attached per lot only when the viewer can adjust stock.
func SearchResults(result *domain.SearchResult, canAdjust bool) []line.Message {
	if result == nil || len(result.Listings) == 0 {
		return NoResults(result.Keyword)
	}

	bubbles := make([]*line.Bubble, 0, len(result.Listings)+1)
	for _, listing := range result.Listings {
		bubbles = append(bubbles, listingBubble(listing, canAdjust))
	}
	if result.HasMore {
		bubbles = append(bubbles, nextPageBubble(result.Keyword, result.Page+1))
	}

	alt := fmt.Sprintf("「%s」の検索結果 %d件", result.Keyword, len(result.Listings))
	return []line.Message{line.NewFlexMessage(alt, line.NewCarousel(bubbles...))}
}

// BranchResults renders shared stock of the same tire at other stores.
// Branch listings are always read-only.
func BranchResults(result *domain.SearchResult) []line.Message {
	if result == nil || len(result.Listings) == 0 {
		return []line.Message{line.NewTextMessage("他店舗に同サイズの共有在庫はありません。")}
	}

	bubbles := make([]*line.Bubble, 0, len(result.Listings))
	for _, listing := range result.Listings {
		bubbles = append(bubbles, listingBubble(listing, false))
	}

	alt := fmt.Sprintf("他店舗の在庫 %d件", len(result.Listings))
	return []line.Message{line.NewFlexMessage(alt, line.NewCarousel(bubbles...))}
}

// ConfirmAdjust renders the old -> new confirmation card. The confirm
// button payload carries only the lot id and the signed delta; the
// commit step re-reads and re-authorizes everything else.
func ConfirmAdjust(preview *domain.AdjustmentPreview, delta int, tireInfo string) []line.Message {
	verb := "追加"
	if delta < 0 {
		verb = "削減"
	}

	body := line.NewBox("vertical",
		&line.Text{Type: "text", Text: tireInfo, Size: "sm", Wrap: true},
		&line.Separator{Type: "separator", Margin: "md"},
		&line.Text{
			Type:   "text",
			Text:   fmt.Sprintf("在庫数 %d → %d", preview.Before, preview.After),
			Size:   "lg",
			Weight: "bold",
			Margin: "md",
			Align:  "center",
		},
	)

	footer := line.NewBox("horizontal",
		line.NewPostbackButton("キャンセル", cancelPayload(), "secondary"),
		line.NewPostbackButton("確定", confirmAdjustPayload(preview.DotID, delta), "primary"),
	)
	footer.Spacing = "md"

	bubble := line.NewBubble()
	bubble.Header = headerBox(fmt.Sprintf("在庫%sの確認", verb))
	bubble.Body = body
	bubble.Footer = footer

	alt := fmt.Sprintf("在庫%s確認: %d → %d", verb, preview.Before, preview.After)
	return []line.Message{line.NewFlexMessage(alt, bubble)}
}

// AdjustCommitted is the plain-text success summary after a mutation.
func AdjustCommitted(adj *domain.StockAdjustment) []line.Message {
	return []line.Message{line.NewTextMessage(
		fmt.Sprintf("在庫を更新しました。\n%d → %d (変更 %+d)", adj.Before, adj.After, adj.Change),
	)}
}

// Cancelled acknowledges a cancel press. No mutation happened.
func Cancelled() []line.Message {
	return []line.Message{line.NewTextMessage("キャンセルしました。在庫は変更されていません。")}
}

// AccessDenied is the reply when the actor lacks adjust capability.
func AccessDenied() []line.Message {
	return []line.Message{line.NewTextMessage("この操作を行う権限がありません。店舗のオーナーにお問い合わせください。")}
}

// NotFound is the reply when a referenced lot or tire no longer exists.
func NotFound() []line.Message {
	return []line.Message{line.NewTextMessage("対象の在庫が見つかりませんでした。すでに削除された可能性があります。")}
}

// GenericError is the reply for unexpected internal failures. Never
// leaks error codes or internal identifiers.
func GenericError() []line.Message {
	return []line.Message{line.NewTextMessage("エラーが発生しました。しばらくしてからもう一度お試しください。")}
}

// DuplicateDelivery is the reply when a confirm postback was already
// applied and the platform redelivered it.
func DuplicateDelivery() []line.Message {
	return []line.Message{line.NewTextMessage("この操作はすでに処理されています。")}
}

// ReserveAck acknowledges a reserve press. Reservation handling lives
// in the web application; the bot only confirms receipt.
func ReserveAck() []line.Message {
	return []line.Message{line.NewTextMessage("取り置きのご希望を受け付けました。店舗からの連絡をお待ちください。")}
}

// LinkSuccess is the reply after a link code was redeemed.
func LinkSuccess() []line.Message {
	return []line.Message{line.NewTextMessage("アカウント連携が完了しました。在庫の検索・操作がご利用いただけます。")}
}

// LinkExpired tells the user to generate a fresh code.
func LinkExpired() []line.Message {
	return []line.Message{line.NewTextMessage("連携コードの有効期限が切れています。ウェブ画面から新しいコードを発行してください。")}
}

// LinkUnknown tells the user the code was wrong, not expired.
func LinkUnknown() []line.Message {
	return []line.Message{line.NewTextMessage("連携コードが正しくありません。コードをご確認のうえ、もう一度お送りください。")}
}

// TireInfo is the human-readable lot label round-tripped through the
// pre-adjust payload so the confirmation card can describe the lot
// without another lookup.
func TireInfo(tire domain.Tire, dot domain.TireDot) string {
	return fmt.Sprintf("%s %s %s DOT:%s", tire.Brand, tire.Model, tire.Size, dot.DotCode)
}

func headerBox(title string) *line.Box {
	header := line.NewBox("vertical", &line.Text{
		Type:   "text",
		Text:   title,
		Size:   "md",
		Weight: "bold",
		Color:  "#FFFFFF",
	})
	header.BackgroundColor = headerColor
	header.PaddingAll = "12px"
	return header
}

func listingBubble(listing domain.TireListing, canAdjust bool) *line.Bubble {
	tire := listing.Tire

	title := tire.Brand
	if tire.Model != "" {
		title += " " + tire.Model
	}

	contents := []line.FlexComponent{
		&line.Text{Type: "text", Text: tire.Size, Size: "xl", Weight: "bold"},
		&line.Text{Type: "text", Text: fmt.Sprintf("¥%.0f", tire.Price), Size: "md", Color: accentColor},
	}
	if listing.StoreName != "" {
		contents = append(contents, &line.Text{Type: "text", Text: listing.StoreName, Size: "sm", Color: mutedColor})
	}
	contents = append(contents, &line.Separator{Type: "separator", Margin: "md"})

	if len(listing.Dots) == 0 {
		contents = append(contents, &line.Text{Type: "text", Text: "在庫なし", Size: "sm", Color: mutedColor, Margin: "md"})
	}
	for _, dot := range listing.Dots {
		contents = append(contents, dotRow(tire, dot, canAdjust))
	}

	body := line.NewBox("vertical", contents...)
	body.Spacing = "sm"

	footer := line.NewBox("horizontal",
		line.NewPostbackButton("他店舗在庫", checkBranchesPayload(tire.ID), "secondary"),
		line.NewPostbackButton("取り置き", reservePayload(tire.ID), "secondary"),
	)
	footer.Spacing = "md"

	bubble := line.NewBubble()
	bubble.Header = headerBox(title)
	bubble.Body = body
	bubble.Footer = footer
	return bubble
}

func dotRow(tire domain.Tire, dot domain.TireDot, canAdjust bool) line.FlexComponent {
	label := "DOT " + dot.DotCode
	if dot.Promotion != "" {
		label += " " + dot.Promotion
	}

	contents := []line.FlexComponent{
		&line.Text{Type: "text", Text: label, Size: "sm", Flex: line.IntPtr(3), Gravity: "center", Wrap: true},
		&line.Text{Type: "text", Text: fmt.Sprintf("%d本", dot.Quantity), Size: "sm", Align: "end", Flex: line.IntPtr(1), Gravity: "center"},
	}

	if canAdjust {
		info := TireInfo(tire, dot)
		minus := line.NewPostbackButton("-", preAdjustPayload(dot.ID, -1, info), "secondary")
		minus.Height = "sm"
		minus.Flex = line.IntPtr(1)
		plus := line.NewPostbackButton("+", preAdjustPayload(dot.ID, +1, info), "primary")
		plus.Height = "sm"
		plus.Flex = line.IntPtr(1)
		contents = append(contents, minus, plus)
	}

	row := line.NewBox("horizontal", contents...)
	row.Spacing = "sm"
	row.Margin = "md"
	return row
}

func nextPageBubble(keyword string, nextPage int) *line.Bubble {
	body := line.NewBox("vertical",
		&line.Text{Type: "text", Text: "さらに結果があります", Size: "md", Align: "center", Wrap: true},
	)

	footer := line.NewBox("vertical",
		line.NewPostbackButton("次のページ", searchPayload(keyword, nextPage), "primary"),
	)

	bubble := line.NewBubble()
	bubble.Body = body
	bubble.Footer = footer
	return bubble
}
