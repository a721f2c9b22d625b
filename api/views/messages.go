package views

// Messages is the UI text for one language.
type Messages struct {
	Title         string
	RootHeading   string
	ServerAddress string
	ColName       string
	ColType       string
	ColSize       string
	ColActions    string
	Folder        string
	File          string
	Browse        string
	Download      string
	DownloadZip   string
	Empty         string
	EmptyDir      string
	UploadHeading string
	UploadButton  string
	PinHeading    string
	PinPrompt     string
	PinSubmit     string
	PinWrong      string
	PinThrottled  string
	NotFound      string
	NotFoundPath  string
	BackHome      string
}

var catalog = map[string]Messages{
	"en": {
		Title:         "LocalShare",
		RootHeading:   "Shared files",
		ServerAddress: "Server address",
		ColName:       "Name",
		ColType:       "Type",
		ColSize:       "Size",
		ColActions:    "Actions",
		Folder:        "Folder",
		File:          "File",
		Browse:        "Browse",
		Download:      "Download",
		DownloadZip:   "Download as zip",
		Empty:         "Nothing is shared yet",
		EmptyDir:      "This folder is empty",
		UploadHeading: "Upload files",
		UploadButton:  "Upload",
		PinHeading:    "PIN required",
		PinPrompt:     "Enter the 4-digit PIN shown on the sharing device",
		PinSubmit:     "Continue",
		PinWrong:      "Wrong PIN, please try again",
		PinThrottled:  "Too many attempts, wait a minute and try again",
		NotFound:      "Not found",
		NotFoundPath:  "The requested path does not exist:",
		BackHome:      "Back to shared files",
	},
	"zh": {
		Title:         "LocalShare",
		RootHeading:   "共享文件",
		ServerAddress: "服务器地址",
		ColName:       "名称",
		ColType:       "类型",
		ColSize:       "大小",
		ColActions:    "操作",
		Folder:        "文件夹",
		File:          "文件",
		Browse:        "浏览",
		Download:      "下载",
		DownloadZip:   "打包下载",
		Empty:         "暂无共享内容",
		EmptyDir:      "此文件夹为空",
		UploadHeading: "上传文件",
		UploadButton:  "上传",
		PinHeading:    "需要 PIN 码",
		PinPrompt:     "请输入共享设备上显示的 4 位 PIN 码",
		PinSubmit:     "继续",
		PinWrong:      "PIN 码错误，请重试",
		PinThrottled:  "尝试次数过多，请稍后再试",
		NotFound:      "未找到",
		NotFoundPath:  "请求的路径不存在：",
		BackHome:      "返回共享列表",
	},
}

// For returns the catalog for lang, falling back to English.
func For(lang string) Messages {
	if m, ok := catalog[lang]; ok {
		return m
	}
	return catalog["en"]
}
