package ui

import (
	"fmt"

	"fyne.io/fyne/v2/lang"
	"golang.org/x/text/language"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle            = "app_title"
	KeySettings            = "settings"
	KeyFile                = "file"
	KeyLanguage            = "language"
	KeySave                = "save"
	KeyCancel              = "cancel"
	KeyBrowse              = "browse"
	KeySettingsSaved       = "settings_saved"
	KeyDropHint            = "drop_hint"
	KeySelectImage         = "select_image"
	KeySelectFolder        = "select_folder"
	KeyAddImages           = "add_images"
	KeyAddFolder           = "add_folder"
	KeyClearAll            = "clear_all"
	KeyConfirmClear        = "confirm_clear"
	KeyConfirmClearMessage = "confirm_clear_message"
	KeyMerge               = "merge"
	KeyRemove              = "remove"
	KeyOpen                = "open"
	KeyReveal              = "reveal"
	KeyImageCount          = "image_count"
	KeyLoadingThumbnails   = "loading_thumbnails"
	KeyMerging             = "merging"
	KeyMergeSuccess        = "merge_success"
	KeyMergeFailed         = "merge_failed"
	KeyOpenFailed          = "open_failed"
	KeyNoFilesSelected     = "no_files_selected"
	KeyNoSupportedImages   = "no_supported_images"
	KeyAlreadyStaged       = "already_staged"
	KeyNoDestination       = "no_destination"
	KeyThumbnailFailed     = "thumbnail_failed"
	KeyMergeInProgress     = "merge_in_progress"
	KeyCollationLocale     = "collation_locale"
	KeyAcceptPDF           = "accept_pdf"
	KeyOutputDirectory     = "output_directory"
	KeyOutputFilename      = "output_filename"
	KeyReorderHint         = "reorder_hint"
)

// systemLocale reports the OS locale; replaced in tests
var systemLocale = func() string {
	return string(lang.SystemLocale())
}

// supportedLanguages is ordered by match preference, English first as fallback
var supportedLanguages = []language.Tag{language.English, language.SimplifiedChinese}

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the closest supported
// language to the OS locale.
func (l *Localization) SetLanguage(code string) {
	if code == "system" {
		code = matchLanguage(systemLocale())
	}

	if _, exists := l.texts[code]; exists {
		l.currentLanguage = code
	}
}

func matchLanguage(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return "en"
	}
	_, index, confidence := language.NewMatcher(supportedLanguages).Match(tag)
	if confidence == language.No {
		return "en"
	}
	base, _ := supportedLanguages[index].Base()
	return base.String()
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns the localized text for key used as a format string
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"zh": "简体中文",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:            "Image to PDF",
		KeySettings:            "Settings",
		KeyFile:                "File",
		KeyLanguage:            "Language",
		KeySave:                "Save",
		KeyCancel:              "Cancel",
		KeyBrowse:              "Browse",
		KeySettingsSaved:       "Settings saved successfully!",
		KeyDropHint:            "Drop images here",
		KeySelectImage:         "Select image",
		KeySelectFolder:        "Select folder",
		KeyAddImages:           "Add images",
		KeyAddFolder:           "Add folder",
		KeyClearAll:            "Clear all",
		KeyConfirmClear:        "Clear all images",
		KeyConfirmClearMessage: "Remove every image from the list?",
		KeyMerge:               "Merge to PDF",
		KeyRemove:              "Remove",
		KeyOpen:                "Open",
		KeyReveal:              "Show in folder",
		KeyImageCount:          "%d image(s)",
		KeyLoadingThumbnails:   "Loading previews...",
		KeyMerging:             "Merging images into PDF...",
		KeyMergeSuccess:        "PDF saved to %s",
		KeyMergeFailed:         "Merge failed",
		KeyOpenFailed:          "Could not open file",
		KeyNoFilesSelected:     "No files selected",
		KeyNoSupportedImages:   "None of the selected files is a supported image",
		KeyAlreadyStaged:       "The selected files are already in the list",
		KeyNoDestination:       "No save location selected",
		KeyThumbnailFailed:     "Could not load previews",
		KeyMergeInProgress:     "A merge is already running",
		KeyCollationLocale:     "Sort locale",
		KeyAcceptPDF:           "Accept PDF files as input",
		KeyOutputDirectory:     "Default save directory",
		KeyOutputFilename:      "Default file name",
		KeyReorderHint:         "Drag thumbnails to change page order",
	}

	l.texts["zh"] = map[string]string{
		KeyAppTitle:            "图片转 PDF",
		KeySettings:            "设置",
		KeyFile:                "文件",
		KeyLanguage:            "语言",
		KeySave:                "保存",
		KeyCancel:              "取消",
		KeyBrowse:              "浏览",
		KeySettingsSaved:       "设置已保存",
		KeyDropHint:            "将图片拖放到此处",
		KeySelectImage:         "选择图片",
		KeySelectFolder:        "选择文件夹",
		KeyAddImages:           "添加图片",
		KeyAddFolder:           "添加文件夹",
		KeyClearAll:            "全部清除",
		KeyConfirmClear:        "清除所有图片",
		KeyConfirmClearMessage: "确定要移除列表中的所有图片吗?",
		KeyMerge:               "合并为 PDF",
		KeyRemove:              "移除",
		KeyOpen:                "打开",
		KeyReveal:              "在文件夹中显示",
		KeyImageCount:          "%d 张图片",
		KeyLoadingThumbnails:   "正在加载预览...",
		KeyMerging:             "正在合并为 PDF...",
		KeyMergeSuccess:        "PDF 已保存到 %s",
		KeyMergeFailed:         "合并失败",
		KeyOpenFailed:          "无法打开文件",
		KeyNoFilesSelected:     "未选择文件",
		KeyNoSupportedImages:   "所选文件中没有支持的图片",
		KeyAlreadyStaged:       "所选文件已在列表中",
		KeyNoDestination:       "未选择保存位置",
		KeyThumbnailFailed:     "无法加载预览",
		KeyMergeInProgress:     "合并正在进行中",
		KeyCollationLocale:     "排序语言",
		KeyAcceptPDF:           "允许 PDF 文件作为输入",
		KeyOutputDirectory:     "默认保存目录",
		KeyOutputFilename:      "默认文件名",
		KeyReorderHint:         "拖动缩略图以调整页面顺序",
	}
}
