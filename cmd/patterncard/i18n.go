// Package main provides localization for the patterncard CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Create, share and export generative pattern cards": "生成パターンカードの作成・共有・動画書き出し",

		// Export command
		"Export a card collection as MP4 video":                     "カードコレクションをMP4動画として書き出し",
		"Output MP4 file path (required unless set in the config file)": "出力MP4ファイルパス（設定ファイルで指定しない場合は必須）",
		"YAML config file providing flag defaults":                  "フラグのデフォルト値を与えるYAML設定ファイル",
		"Load the collection from a share token instead of a file":  "ファイルの代わりに共有トークンからコレクションを読み込み",
		"Square frame size in pixels (default: 1000)":               "正方形フレームのサイズ（ピクセル、デフォルト: 1000）",
		"Times the card set repeats (min: 1)":                       "カードセットの繰り返し回数（最小: 1）",
		"Per-scene duration in milliseconds (overrides the document)": "シーンごとの表示時間（ミリ秒、ドキュメントの値を上書き）",
		"Intro title card text":                                     "冒頭タイトルカードのテキスト",
		"Outro title card text":                                     "末尾タイトルカードのテキスト",
		"Rendering theme (dark, light)":                             "描画テーマ（dark, light）",
		"Preferred video codec (avc, hevc, vp9, av1)":               "優先する動画コーデック（avc, hevc, vp9, av1）",
		"Quality preset (low, medium, high)":                        "品質プリセット（low, medium, high）",
		"Video CRF value (0-63, lower is better, overrides quality preset)": "動画のCRF値（0-63、低いほど高品質、品質プリセットを上書き）",
		"Target bitrate in kbps (overrides quality preset)":         "目標ビットレート（kbps、品質プリセットを上書き）",
		"Use the compact 512px preset":                              "コンパクトな512pxプリセットを使用",
		"Path to ffmpeg binary (falls back to FFMPEG_PATH env, then PATH)": "ffmpegバイナリのパス（未指定時はFFMPEG_PATH環境変数、次にPATHを探索）",
		"Enable debug output":                                       "デバッグ出力を有効化",
		"Directory for debug output":                                "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error)":                      "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                   "すべてのログ出力を抑制",

		// Render command
		"Render one card as a PNG image":             "1枚のカードをPNG画像として描画",
		"Output PNG file path (required)":            "出力PNGファイルパス（必須）",
		"Card index to render":                       "描画するカードのインデックス",
		"Square frame size in pixels":                "正方形フレームのサイズ（ピクセル）",
		"Pattern rotation in degrees":                "パターンの回転角度（度）",
		"Embed the share token into the PNG metadata": "共有トークンをPNGメタデータに埋め込み",

		// Extract command
		"Extract the share token embedded in a PNG image":            "PNG画像に埋め込まれた共有トークンを抽出",
		"Print the decoded document as JSON instead of the raw token": "トークンの代わりにデコードしたドキュメントをJSONで出力",

		// Share command
		"Encode and decode share tokens":          "共有トークンのエンコードとデコード",
		"Encode a document file into a share token": "ドキュメントファイルを共有トークンにエンコード",
		"Decode a share token into a document file": "共有トークンをドキュメントファイルにデコード",

		// Play command
		"Cycle through a collection in the terminal":               "ターミナルでコレクションを順番に再生",
		"Stop after this many card changes (0 = run until interrupted)": "指定回数のカード切り替え後に停止（0 = 中断まで実行）",
	})
}
