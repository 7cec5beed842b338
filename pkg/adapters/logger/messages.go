package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting export":                 "エクスポートを開始します",
		"Export completed successfully":   "エクスポートが正常に完了しました",
		"Output saved to %s":              "出力を %s に保存しました",
		"Interrupted, shutting down...":   "中断されました。シャットダウン中...",
		"Scene plan ready: %d scenes at %d ms each": "シーンプラン作成完了: %d シーン (各 %d ms)",
		"Video assembled: %d frames, %d bytes":      "動画の組み立て完了: %d フレーム, %d バイト",

		// Assemble stage
		"Assembling %d scenes, %d frames per scene, %d total": "%d シーンを組み立て中 (シーンあたり %d フレーム, 合計 %d)",
		"Assembled %d frames, %d bytes":                       "%d フレームを組み立てました (%d バイト)",

		// Scene stage
		"Scene plan: %d scenes at %d ms each": "シーンプラン: %d シーン (各 %d ms)",

		// Codec selection
		"Codec %s not available, falling back to %s": "コーデック %s が利用できないため %s にフォールバックします",

		// Errors
		"Failed to build scene plan: %s": "シーンプランの作成に失敗しました: %s",
		"Failed to assemble video: %s":   "動画の組み立てに失敗しました: %s",
		"Failed to write output: %s":     "出力の書き込みに失敗しました: %s",
	})
}
