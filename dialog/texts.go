package dialog

import "fmt"

const (
	textWelcome = "Добро пожаловать в MaxExpress! 😊\n\n" +
		"У нас Вы можете:\n\n" +
		"1) Отслеживать статус доставки 🚚\n" +
		"2) Получить свой клиентский код 💼\n" +
		"3) Узнать способы оплаты 💳 (по весу или по плотности)"

	textSignupIntro  = "Пройдите быструю и легкую регистрацию, чтобы получить свой клиентский код!"
	textAskFirstName = "Напишите Ваше имя."
	textAskLastName  = "Напишите Вашу фамилию."
	textAskPhone     = "Напишите Ваш номер телефона.\nПример: 996XXXXXXXXX"
	textRegistered   = "Вы зарегистрированы!"

	textRetryFirstName = "Неверный формат.\nВведите имя еще раз."
	textRetryLastName  = "Неверный формат.\nВведите фамилию еще раз."
	textRetryPhone     = "Неверный формат.\nВведите номер телефона еще раз.\nПример: 996XXXXXXXXX"

	textAskTrack   = "Введите трек-код посылки."
	textRetryTrack = "Неверный формат.\nВведите трек-код еще раз."

	textAskWidth   = "Введите ширину коробки в сантиметрах."
	textAskLength  = "Введите длину коробки в сантиметрах."
	textAskHeight  = "Введите высоту коробки в сантиметрах."
	textAskWeight  = "Введите вес посылки в килограммах."
	textRetryPrice = "Неверный формат.\nВведите число, например: 12.5"

	textPickMarketplace = "Выберите маркетплейс:"

	textApology    = "Что-то пошло не так. Попробуйте еще раз позже."
	textVendorDown = "Не удалось проверить статус посылки. Попробуйте позже."

	btnBegin = "Начать"
	btnNext  = "Далее"
	btnBack  = "⬅️ Назад"

	btnLocate   = "Отследить посылку 🚚"
	btnPrice    = "Рассчитать стоимость 💰"
	btnCode     = "Код клиента 💼"
	btnAddress  = "Адрес склада 📍"
	btnSupport  = "Поддержка 🧑‍💻"
	btnTutorial = "Как заказать? 📦"
)

func homeText(acc Account) string {
	return fmt.Sprintf("Личный кабинет MaxExpress\n\n%s %s\nКод клиента: %s",
		acc.FirstName, acc.LastName, acc.ClientCode)
}

func clientCodeText(acc Account) string {
	return fmt.Sprintf("Ваш код клиента: %s\n\nУказывайте его в адресе получателя при оформлении заказа.",
		acc.ClientCode)
}

func trackStatusText(code string, ready bool) string {
	if ready {
		return fmt.Sprintf("Посылка %s уже на складе и готова к отправке! ✅", code)
	}
	return fmt.Sprintf("Посылка %s еще не прибыла на склад. 🕓", code)
}

func priceResultText(density float64, byWeight bool) string {
	if byWeight {
		return fmt.Sprintf("Плотность груза: %.1f кг/м³.\nДоставка считается по весу.", density)
	}
	return fmt.Sprintf("Плотность груза: %.1f кг/м³.\nДоставка считается по плотности.", density)
}
