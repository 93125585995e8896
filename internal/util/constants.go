package util

// ContextUserKey gin 上下文中保存登录用户的键
const ContextUserKey = "user"

// DateFormat 日历日期格式
const DateFormat = "2006-01-02"
