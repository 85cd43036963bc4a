package gateway

// Display messages returned in Result.Error.
const (
	msgPasswordMismatch = "Пароль не совпадает"
	msgPasswordTooShort = "Пароль должен быть больше 6 символов"
	msgEmailInvalid     = "Некорректный email"
	msgEmailTaken       = "Пользователь с таким email уже существует"
	msgRegisterFailed   = "Ошибка при регистрации"
	msgBadCredentials   = "Неверный email или пароль"
	msgSignInFailed     = "Ошибка авторизации"
	msgSignOutFailed    = "Ошибка при выходе"
	msgAuthRequired     = "Необходима авторизация"
	msgSessionExpired   = "Сессия истекла, войдите снова"
	msgTooManyRequests  = "Слишком много попыток, попробуйте позже"
	msgMalformedRequest = "Некорректный запрос"

	msgIngredientsLoadFailed  = "Ошибка при загрузке ингредиентов"
	msgIngredientCreateFailed = "Ошибка при добавлении ингредиента"
	msgIngredientDeleteFailed = "Ошибка при удалении ингредиента"
	msgIngredientNotFound     = "Ингредиент не найден"
	msgIngredientInUse        = "Ингредиент используется в рецептах"

	msgRecipesLoadFailed  = "Ошибка при загрузке рецептов"
	msgRecipeSaveFailed   = "Ошибка при сохранении рецепта"
	msgRecipeDeleteFailed = "Ошибка при удалении рецепта"
	msgRecipeNotFound     = "Рецепт не найден"

	msgUploadFailed = "Не удалось подготовить загрузку изображения"

	msgNameRequired     = "Название обязательно"
	msgNameTooLong      = "Название слишком длинное"
	msgCategoryInvalid  = "Выберите категорию"
	msgUnitInvalid      = "Выберите единицу измерения"
	msgPriceRequired    = "Цена обязательна"
	msgPriceNegative    = "Цена не может быть отрицательной"
	msgDescriptionLong  = "Описание слишком длинное"
	msgImageURLInvalid  = "Некорректный URL изображения"
	msgQuantityInvalid  = "Количество должно быть больше 0"
	msgIngredientNeeded = "Выберите ингредиент"
)
