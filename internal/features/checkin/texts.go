package checkin

const (
	cbPlainCheckIn = "option1"

	txtStart        = "\n  *👉 养号机器人* , 立即点击下面按钮 👇\n  "
	btnCheckIn      = "打卡"
	txtShareContact = "👇 请点击以下__*立即共享手机号安妞*__为共享您的电话号码"
	btnShareContact = "📞 立即共享手机号"
	txtPickType     = "👇 请选择账号类型 ："
	txtCheckedIn    = "✅ 打卡已成功"

	noBio = "No bio available"
)
